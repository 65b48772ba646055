package schedcfg

import "errors"

var (
	// ErrConfigNotFound возвращается, когда для владельца нет сохраненной конфигурации
	ErrConfigNotFound = errors.New("schedcfg.repository: config not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("schedcfg.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("schedcfg.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("schedcfg.repository: failed to scan row")
)
