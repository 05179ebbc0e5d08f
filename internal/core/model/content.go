package model

// SkillCategory is one rotating group of skills.
type SkillCategory struct {
	Title  string   `yaml:"title"`
	Skills []string `yaml:"skills"`
}

// Project is one project slide.
type Project struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
	Link        string   `yaml:"link"`
	Image       string   `yaml:"image"`
}

// Certificate is one certificate slide.
type Certificate struct {
	Title  string `yaml:"title"`
	Issuer string `yaml:"issuer"`
	Year   int    `yaml:"year"`
	Image  string `yaml:"image"`
}

// Contact holds the footer and contact section details.
type Contact struct {
	Email    string `yaml:"email"`
	Location string `yaml:"location"`
	GitHub   string `yaml:"github"`
	LinkedIn string `yaml:"linkedin"`
}

// Portfolio is the full content shown in the showcase window.
type Portfolio struct {
	Owner        string          `yaml:"owner"`
	Title        string          `yaml:"title"`
	Tagline      string          `yaml:"tagline"`
	Hero         []string        `yaml:"hero"`
	About        string          `yaml:"about"`
	Skills       []SkillCategory `yaml:"skills"`
	Projects     []Project       `yaml:"projects"`
	Certificates []Certificate   `yaml:"certificates"`
	Contact      Contact         `yaml:"contact"`
}
