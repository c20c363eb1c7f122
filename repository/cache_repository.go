package repository

// CacheRepository holds the latest displayed evaluation per mode.
// Get reports a miss with ok false and a nil error; err is set only when the
// backend could not be queried.
type CacheRepository interface {
	Get(key string) (value string, ok bool, err error)
	Set(key string, value string) error
}
