package doula

type UpdateProfileRequest struct {
	Name            *string  `json:"name"`
	Location        *string  `json:"location"`
	Price           *float64 `json:"price" validate:"omitempty,gte=0"`
	PriceBundle     *float64 `json:"price_bundle" validate:"omitempty,gte=0"`
	PriceCaption    *string  `json:"price_caption"`
	BundleCaption   *string  `json:"bundle_caption"`
	Qualifications  *string  `json:"qualifications"`
	Services        *string  `json:"services"`
	YearsExperience *int     `json:"years_experience" validate:"omitempty,gte=0"`
	PhotoURL        *string  `json:"photo_url"`
	CertificateURL  *string  `json:"certificate_url"`
	IntroVideoURL   *string  `json:"intro_video_url"`
	Documents       []string `json:"documents"`
}
