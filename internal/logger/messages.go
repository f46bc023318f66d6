package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ru", l10n.LexiconMap{
		// CLI
		"Analyzing video: %s":          "Анализ видео: %s",
		"Mode: %s":                     "Режим: %s",
		"Output will be saved to: %s":  "Результаты будут сохранены в: %s",
		"Video frame rate: %.2f fps":   "Частота кадров: %.2f кадр/с",
		"Results saved to: %s":         "Результаты сохранены в: %s",
		"Using detector config %s":     "Используется конфигурация детектора %s",
		"Analysis failed: %s":          "Ошибка анализа: %s",
		"Scanned %d frames":            "Обработано кадров: %d",

		"Analysis complete. Found %d camera shake events.": "Анализ завершён. Найдено событий тряски камеры: %d.",
		"Analysis complete. Found faces in %d frames.":     "Анализ завершён. Лица найдены в %d кадрах.",
		"Analysis complete. Found objects in %d frames.":   "Анализ завершён. Объекты найдены в %d кадрах.",

		// Scanners
		"Frame %d motion magnitude %.4f": "Кадр %d: величина движения %.4f",
		"Frame %d: %d matches":           "Кадр %d: совпадений %d",
		"Loaded cascade %s":              "Загружен каскад %s",
	})
}
