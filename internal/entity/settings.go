package entity

type SiteSettings struct {
	SiteTitle       string `json:"site_title" db:"site_title" validate:"required,max=200"`
	SiteDescription string `json:"site_description" db:"site_description"`
	ContactEmail    string `json:"contact_email" db:"contact_email" validate:"omitempty,email"`
	SocialFacebook  string `json:"social_facebook" db:"social_facebook" validate:"omitempty,url"`
	SocialTwitter   string `json:"social_twitter" db:"social_twitter" validate:"omitempty,url"`
	SocialInstagram string `json:"social_instagram" db:"social_instagram" validate:"omitempty,url"`
	SocialLinkedin  string `json:"social_linkedin" db:"social_linkedin" validate:"omitempty,url"`
	FooterText      string `json:"footer_text" db:"footer_text"`
	Logo            string `json:"logo" db:"logo"`
	Favicon         string `json:"favicon" db:"favicon"`
}

// DefaultSiteSettings возвращаются, пока настройки ни разу не сохранялись
func DefaultSiteSettings() *SiteSettings {
	return &SiteSettings{SiteTitle: "My CMS"}
}
