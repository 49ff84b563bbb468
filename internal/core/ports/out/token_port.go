package out

// TokenStorePort - персистентное хранилище единственного bearer-токена.
// Аналог localStorage браузера: один токен под фиксированным ключом.
type TokenStorePort interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}
