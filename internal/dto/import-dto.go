package dto

type ImportRowErrorDTO struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportResultDTO struct {
	Imported int                 `json:"imported"`
	Rejected []ImportRowErrorDTO `json:"rejected"`
}
