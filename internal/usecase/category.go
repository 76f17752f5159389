package usecase

var categoryNames = map[string]string{
	"wushu-taolu": "Ушу Таолу",
	"wushu-sanda": "Ушу Саньда",
	"equipment":   "Инвентарь",
	"clothing":    "Одежда",
	"accessories": "Аксессуары",
	"books":       "Литература",
	"protective":  "Защитная экипировка",
	"boxing":      "Бокс",
	"mma":         "MMA",
	"kickboxing":  "Кикбоксинг",
	"karate":      "Карате",
	"protection":  "Защита",
}

// CategoryName maps a category key to its display name, falling back to the key itself.
func CategoryName(key string) string {
	if n, ok := categoryNames[key]; ok {
		return n
	}
	return key
}
