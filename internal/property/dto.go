package property

type CreatePropertyDTO struct {
	Title    string  `json:"title"`
	Location string  `json:"location"`
	Price    float64 `json:"price"`
	Status   string  `json:"status"`  // defaults to "new"
	VIPOnly  bool    `json:"vipOnly"` // arms the default one-month window
}

type UpdatePropertyDTO struct {
	Title    *string  `json:"title"`
	Location *string  `json:"location"`
	Price    *float64 `json:"price"`
	Status   *string  `json:"status"`
}

type GrantExclusivityDTO struct {
	DurationDays int `json:"durationDays"` // defaults to DefaultExclusivityDays
}
