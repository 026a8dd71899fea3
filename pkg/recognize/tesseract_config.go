package recognize

// TesseractConfig configures the local Tesseract engine.
type TesseractConfig struct {
	// Language is a Tesseract language code such as "chi_sim" or "chi_sim+eng".
	Language string `yaml:"language"`
	// PageSegMode is the Tesseract page segmentation mode (0-13); 0 keeps the default.
	PageSegMode int `yaml:"page_seg_mode"`
}

func (c TesseractConfig) withDefaults() TesseractConfig {
	if c.Language == "" {
		c.Language = "chi_sim"
	}
	if c.PageSegMode < 0 || c.PageSegMode > 13 {
		c.PageSegMode = 0
	}
	return c
}
