package pricing

// Quote результат расчёта стоимости услуги
type Quote struct {
	Amount    float64
	UnitLabel string
	// StartingFrom - цена "от": тарифная услуга без выбранного размера
	StartingFrom bool
	// Nights - количество ночей, по которому посчитан пансион
	Nights *int
}

// Options необязательные параметры расчёта
type Options struct {
	// Nights - фактическое количество ночей для пакета "7-Days+"; меньше минимума пакета не бывает
	Nights *int
}

// Amounts итоговые суммы записи
type Amounts struct {
	Base  float64
	Addon float64
	Total float64
}
