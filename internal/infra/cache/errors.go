package cache

import "errors"

var (
	// ErrStore возвращается при ошибке хранилища кэша
	ErrStore = errors.New("cache: store error")
)
