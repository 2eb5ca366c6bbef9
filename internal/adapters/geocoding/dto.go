package geocoding

// Ответ провайдера: статус верхнего уровня плюс массив кандидатов,
// у первого из которых вложенная geometry.location.{lat,lng}.
type geocodeResponse struct {
	Status  string          `json:"status"`
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}
