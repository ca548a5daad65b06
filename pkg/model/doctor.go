package model

type Doctor struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Specialty       string  `json:"specialty"`
	Rating          float64 `json:"rating"`
	ReviewCount     int     `json:"reviewCount"`
	Experience      int     `json:"experience"`
	Education       string  `json:"education,omitempty"`
	Availability    string  `json:"availability"`
	ImageURL        string  `json:"imageUrl,omitempty"`
	ConsultationFee int     `json:"consultationFee"`
}
