package domain

import "time"

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// Methods describes how a vendor hands goods over to a buyer.
type Methods struct {
	Delivery bool `json:"delivery"`
	Shipping bool `json:"shipping"`
	Meetup   bool `json:"meetup"`
}

type Location struct {
	Country    string   `json:"country"`
	Department string   `json:"department"`
	PostalCode string   `json:"postalCode"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
}

type SocialLinks struct {
	Primary []string          `json:"primary,omitempty"`
	Links   map[string]string `json:"links,omitempty"`
	Others  string            `json:"others,omitempty"`
}

type CustomNetwork struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Plug is a certified vendor profile listed in the marketplace.
// Likes and ReferralCount are backed by native counters and merged in by
// the repository; they are ignored when present in a stored document.
type Plug struct {
	ID                  string          `json:"_id"`
	Name                string          `json:"name"`
	Photo               string          `json:"photo,omitempty"`
	Description         string          `json:"description,omitempty"`
	Methods             Methods         `json:"methods"`
	DeliveryDepartments []string        `json:"deliveryDepartments,omitempty"`
	DeliveryPostalCodes []string        `json:"deliveryPostalCodes,omitempty"`
	MeetupDepartments   []string        `json:"meetupDepartments,omitempty"`
	MeetupPostalCodes   []string        `json:"meetupPostalCodes,omitempty"`
	SocialNetworks      SocialLinks     `json:"socialNetworks"`
	CustomNetworks      []CustomNetwork `json:"customNetworks,omitempty"`
	Location            Location        `json:"location"`
	Countries           []string        `json:"countries,omitempty"`
	ShippingCountries   []string        `json:"shippingCountries,omitempty"`
	Country             string          `json:"country,omitempty"`
	CountryFlag         string          `json:"countryFlag,omitempty"`
	Department          string          `json:"department,omitempty"`
	PostalCode          string          `json:"postalCode,omitempty"`
	Likes               int64           `json:"likes"`
	ReferralCount       int64           `json:"referralCount"`
	ReferralLink        string          `json:"referralLink,omitempty"`
	IsActive            bool            `json:"isActive"`
	IsExample           bool            `json:"isExample,omitempty"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

type Video struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail,omitempty"`
}

// Product references its plug and category by plain value; neither link is
// enforced beyond best-effort checks at write time.
type Product struct {
	ID             string         `json:"_id"`
	Name           string         `json:"name"`
	Description    string         `json:"description,omitempty"`
	Price          float64        `json:"price"`
	Category       string         `json:"category,omitempty"`
	Images         []string       `json:"images"`
	Videos         []Video        `json:"videos,omitempty"`
	InStock        bool           `json:"inStock"`
	Featured       bool           `json:"featured"`
	Specifications map[string]any `json:"specifications,omitempty"`
	PlugID         string         `json:"plugId,omitempty"`
	Likes          int64          `json:"likes"`
	Views          int64          `json:"views"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type Category struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// User mirrors the Telegram identity synced by the bot. TelegramID is the
// stable external identity; ID is a locally generated secondary key.
type User struct {
	ID           string    `json:"_id"`
	TelegramID   string    `json:"telegramId"`
	Username     string    `json:"username,omitempty"`
	FirstName    string    `json:"firstName,omitempty"`
	LastName     string    `json:"lastName,omitempty"`
	PhotoURL     string    `json:"photoUrl,omitempty"`
	LanguageCode string    `json:"languageCode,omitempty"`
	IsPremium    bool      `json:"isPremium"`
	JoinedAt     time.Time `json:"joinedAt"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserStats is keyed by telegramId, not by the internal user ID.
type UserStats struct {
	TelegramID  string    `json:"userId"`
	Points      int64     `json:"points"`
	Level       int64     `json:"level"`
	BattlesWon  int64     `json:"battlesWon"`
	BattlesLost int64     `json:"battlesLost"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// VendorApplication is a pending vendor's submitted profile. Approval is a
// one-way transition that creates a Plug.
type VendorApplication struct {
	ID             string            `json:"_id"`
	UserID         string            `json:"userId,omitempty"`
	TelegramID     string            `json:"telegramId"`
	Username       string            `json:"username,omitempty"`
	SocialNetworks SocialLinks       `json:"socialNetworks"`
	Methods        Methods           `json:"methods"`
	DeliveryZones  string            `json:"deliveryZones,omitempty"`
	ShippingZones  string            `json:"shippingZones,omitempty"`
	MeetupZones    string            `json:"meetupZones,omitempty"`
	Country        string            `json:"country,omitempty"`
	Department     string            `json:"department,omitempty"`
	PostalCode     string            `json:"postalCode,omitempty"`
	Photo          string            `json:"photo,omitempty"`
	ShopPhoto      string            `json:"shopPhoto,omitempty"`
	Description    string            `json:"description,omitempty"`
	Location       Location          `json:"location"`
	Status         ApplicationStatus `json:"status"`
	CreatedAt      time.Time         `json:"createdAt"`
	SubmittedAt    time.Time         `json:"submittedAt"`
	ReviewedAt     *time.Time        `json:"reviewedAt,omitempty"`
	ReviewedBy     string            `json:"reviewedBy,omitempty"`
}
