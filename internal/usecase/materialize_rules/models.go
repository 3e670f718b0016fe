package materialize_rules

// Report итог прохода материализатора по активным правилам
type Report struct {
	TotalRules     int // Всего активных правил
	ProcessedCount int // Создано бронирований
	SkippedCount   int // Пропущено (уже материализованы на этой неделе)
	ErrorCount     int // Правил, завершившихся ошибкой
}
