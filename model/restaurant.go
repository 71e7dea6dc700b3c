package model

type Restaurant struct {
	DTO
	Name            string  `gorm:"not null" json:"name"`
	Slug            string  `gorm:"uniqueIndex;not null" json:"slug"`
	Phone           string  `json:"phone"`
	Address         string  `json:"address"`
	Cep             string  `json:"cep"`
	LogoUrl         *string `json:"logo_url"`
	MenuDocumentUrl *string `json:"menu_document_url"`
	Active          bool    `json:"active"`
}

type CreateRestaurantInput struct {
	Name    string `validate:"required,min=2" json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Cep     string `validate:"omitempty,len=8,numeric" json:"cep"`
	LogoUrl string `validate:"omitempty,url" json:"logo_url"`
}

type UpdateRestaurantInput struct {
	Name    *string `validate:"omitempty,min=2" json:"name"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Cep     *string `validate:"omitempty,len=8,numeric" json:"cep"`
	LogoUrl *string `validate:"omitempty,url" json:"logo_url"`
	Active  *bool   `json:"active"`
}
