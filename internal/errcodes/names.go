package errcodes

// Symbolic names published by stratisd's GetErrorCodes.
const (
	OK             = "STRATIS_OK"
	GenericError   = "STRATIS_ERROR"
	NotFound       = "STRATIS_NOTFOUND"
	PoolNotFound   = "STRATIS_POOL_NOTFOUND"
	VolumeNotFound = "STRATIS_VOLUME_NOTFOUND"
	DevNotFound    = "STRATIS_DEV_NOTFOUND"
	CacheNotFound  = "STRATIS_CACHE_NOTFOUND"
	BadParam       = "STRATIS_BAD_PARAM"
	AlreadyExists  = "STRATIS_ALREADY_EXISTS"
	NullName       = "STRATIS_NULL_NAME"
	NoPools        = "STRATIS_NO_POOLS"
	ListFailure    = "STRATIS_LIST_FAILURE"
)
