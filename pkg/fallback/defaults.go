package fallback

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arnolddental/pagegen/internal/common"
	"github.com/arnolddental/pagegen/models"
	"github.com/arnolddental/pagegen/pkg/render"
)

// PracticeInfo carries the practice-wide values substituted into every
// page: review stats and the standard call-to-action URLs.
type PracticeInfo struct {
	Name          string  `yaml:"name"`
	Phone         string  `yaml:"phone"`
	City          string  `yaml:"city"`
	ReviewsCount  int     `yaml:"reviewsCount"`
	ReviewsRating float64 `yaml:"reviewsRating"`
	MembershipURL string  `yaml:"membershipUrl"`
	ContactURL    string  `yaml:"contactUrl"`
	BookingURL    string  `yaml:"bookingUrl"`
}

// PriceItem is one row of the statically configured price list.
type PriceItem struct {
	Service string `yaml:"service"` // service slug the price belongs to
	Label   string `yaml:"label"`
	Price   string `yaml:"price"`
}

// Defaults is the statically configured data behind stage 3 of the chain:
// when neither the live source nor a snapshot can supply a pair, a page is
// synthesized from this.
type Defaults struct {
	Practice  PracticeInfo `yaml:"practice"`
	Pricing   []PriceItem  `yaml:"pricing"`
	Templates struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Heading     string `yaml:"heading"`
		BodyHTML    string `yaml:"bodyHtml"`
	} `yaml:"templates"`
}

// LoadDefaults reads a practice defaults file. An empty path or a missing
// file yields the built-in defaults; a present but unreadable file is an
// error, since running a build against silently wrong pricing is worse
// than failing.
func LoadDefaults(path string) (*Defaults, error) {
	if path == "" {
		return builtinDefaults(), nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return builtinDefaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read practice defaults: %w", err)
	}
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse practice defaults: %w", err)
	}
	if d.Templates.Title == "" || d.Templates.BodyHTML == "" {
		base := builtinDefaults()
		if d.Templates.Title == "" {
			d.Templates.Title = base.Templates.Title
		}
		if d.Templates.Description == "" {
			d.Templates.Description = base.Templates.Description
		}
		if d.Templates.Heading == "" {
			d.Templates.Heading = base.Templates.Heading
		}
		if d.Templates.BodyHTML == "" {
			d.Templates.BodyHTML = base.Templates.BodyHTML
		}
	}
	return &d, nil
}

func builtinDefaults() *Defaults {
	d := &Defaults{
		Practice: PracticeInfo{
			Name:          "Arnold Dental Care",
			Phone:         "0115 926 0000",
			City:          "Nottingham",
			ReviewsCount:  312,
			ReviewsRating: 4.9,
			MembershipURL: "/membership",
			ContactURL:    "/contact",
			BookingURL:    "/book",
		},
		Pricing: []PriceItem{
			{Service: "general-dentistry", Label: "New patient exam", Price: "£65"},
			{Service: "teeth-whitening", Label: "Home whitening kit", Price: "£299"},
			{Service: "dental-implants", Label: "Single implant from", Price: "£2,400"},
			{Service: "emergency-dentistry", Label: "Emergency appointment", Price: "£95"},
		},
	}
	d.Templates.Title = "{{ service }} in {{ suburb }} | {{ city }} Dentist"
	d.Templates.Description = "Looking for {{ service }} near {{ suburb }}? Rated {{ reviewsRating }} from {{ reviewsCount }} reviews. Book online today."
	d.Templates.Heading = "{{ service }} in {{ suburb }}"
	d.Templates.BodyHTML = "<p>Our {{ city }} practice welcomes patients from {{ suburb }} for <strong>{{ service }}</strong>.</p>" +
		"<p>We are rated {{ reviewsRating }} stars from {{ reviewsCount }} patient reviews.</p>" +
		"<p>Spread the cost with our <a href=\"{{ membershipUrl }}\">membership plan</a>, or <a href=\"{{ bookingUrl }}\">book an appointment</a> online.</p>"
	return d
}

// Synthesize builds pair content entirely from static configuration. It
// always succeeds; display names are derived from the slugs and the body
// carries the standard practice copy plus any matching price rows.
func (d *Defaults) Synthesize(serviceSlug, locationSlug string) Content {
	body, err := render.DocumentFromHTML(d.Templates.BodyHTML)
	if err != nil || body == nil {
		body = &models.Document{}
	}
	for _, p := range d.Pricing {
		if p.Service != serviceSlug {
			continue
		}
		body.Nodes = append(body.Nodes, models.Node{
			Type: "p",
			Children: []models.Node{
				{Type: models.NodeText, Text: fmt.Sprintf("%s: %s", p.Label, p.Price)},
			},
		})
	}

	return Content{
		Service: models.ServiceEntry{
			Slug: serviceSlug,
			Name: common.Titleize(serviceSlug),
		},
		Location: models.LocationEntry{
			Slug:   locationSlug,
			Suburb: common.Titleize(locationSlug),
			City:   d.Practice.City,
		},
		Template: models.Template{
			TitleTemplate:       d.Templates.Title,
			DescriptionTemplate: d.Templates.Description,
			HeadingTemplate:     d.Templates.Heading,
			Body:                body,
		},
		Practice: d.Practice,
	}
}
