package users

import "errors"

var (
	// ErrUserNotFound возвращается, когда профиль не найден
	ErrUserNotFound = errors.New("users.repository: user not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("users.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("users.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата
	ErrScanRow = errors.New("users.repository: failed to scan row")
)
