package service

import (
	"math"
	"strconv"
)

// Фиксированные фасовки покупки в долях килограмма
// Только purchase ограничен фасовками; restock и update
// принимают произвольные положительные количества
var PurchaseTiers = []float64{0.25, 0.5, 1.0}

// IsPurchaseTier проверяет, что количество - одна из фиксированных фасовок
func IsPurchaseTier(quantity float64) bool {
	for _, tier := range PurchaseTiers {
		if quantity == tier {
			return true
		}
	}
	return false
}

// TotalPrice считает стоимость количества по цене за килограмм
// Полная точность: округление до валютной точности делается
// только на границе представления, чтобы ошибка округления
// не накапливалась между покупками
func TotalPrice(pricePerKilo, quantity float64) float64 {
	return pricePerKilo * quantity
}

// RoundCurrency округляет сумму до валютной точности (2 знака)
// Применяется только при формировании ответов
func RoundCurrency(value float64) float64 {
	return math.Round(value*100) / 100
}

// TierPrices возвращает цены всех фасовок для заданной цены за килограмм
func TierPrices(pricePerKilo float64) map[string]float64 {
	prices := make(map[string]float64, len(PurchaseTiers))
	for _, tier := range PurchaseTiers {
		key := strconv.FormatFloat(tier, 'f', -1, 64)
		prices[key] = RoundCurrency(TotalPrice(pricePerKilo, tier))
	}
	return prices
}
