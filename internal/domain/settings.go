package domain

import "time"

// Settings is a singleton document. Version increases on every persisted
// update and backs the optimistic-concurrency check in the repository.
type Settings struct {
	WelcomeMessage             string            `json:"welcomeMessage"`
	WelcomeImage               string            `json:"welcomeImage"`
	InfoText                   string            `json:"infoText"`
	MiniAppButtonText          string            `json:"miniAppButtonText"`
	BackgroundImage            string            `json:"backgroundImage"`
	LogoImage                  string            `json:"logoImage"`
	CreatorSocial              map[string]string `json:"creatorSocial,omitempty"`
	BotSocialNetworks          []CustomNetwork   `json:"botSocialNetworks,omitempty"`
	ShopSocialNetworks         []CustomNetwork   `json:"shopSocialNetworks,omitempty"`
	TelegramChannelLink        string            `json:"telegramChannelLink"`
	TelegramChannelID          string            `json:"telegramChannelId"`
	MaintenanceMode            bool              `json:"maintenanceMode"`
	MaintenanceEndTime         *time.Time        `json:"maintenanceEndTime"`
	MaintenanceBackgroundImage string            `json:"maintenanceBackgroundImage"`
	MaintenanceLogo            string            `json:"maintenanceLogo"`
	TutoVideoURL               string            `json:"tutoVideoUrl"`
	TutoText                   string            `json:"tutoText"`
	AdminChatIDs               []string          `json:"adminChatIds,omitempty"`
	Version                    int64             `json:"version"`
	UpdatedAt                  time.Time         `json:"updatedAt"`
}

// DefaultSettings are merged under whatever is stored, so a document written
// by an older build still answers with every field populated.
func DefaultSettings() Settings {
	return Settings{
		WelcomeMessage:      "🔌 Bienvenue sur PLUGS CRTFS !\n\nLa marketplace exclusive des vendeurs certifiés.",
		InfoText:            "Informations sur notre service",
		MiniAppButtonText:   "PLUGS DU MOMENT 🔌",
		TelegramChannelLink: "https://t.me/+RoI-Xzh-ma9iYmY0",
		TelegramChannelID:   "-1002736254394",
		TutoText: "🤖 <b>TUTORIEL DU BOT</b>\n\nBienvenue dans notre bot de plugs certifiés!\n\nCe bot vous permet de:\n" +
			"• 🔌 Découvrir des plugs certifiés\n• 🏅 Gagner des badges\n• 🗳️ Voter pour vos plugs favoris\n" +
			"• 🏆 Participer aux classements\n• 💎 Débloquer des récompenses\n\nUtilisez les boutons du menu pour naviguer.",
		CreatorSocial: map[string]string{
			"telegram":  "@PLGSCRTF",
			"instagram": "@plugscrtfs",
			"snapchat":  "plugscrtfs",
			"twitter":   "@plugscrtfs",
		},
	}
}
