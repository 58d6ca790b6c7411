package application

import (
	"context"
	"fmt"

	"github.com/plugscrtf/marketplace-service/internal/domain"
	"github.com/plugscrtf/marketplace-service/internal/ports"
)

func (s *Service) ListApplications(ctx context.Context, status domain.ApplicationStatus) ([]domain.VendorApplication, error) {
	return s.applications.List(ctx, status)
}

func (s *Service) GetApplication(ctx context.Context, id string) (domain.VendorApplication, error) {
	return s.applications.FindByID(ctx, id)
}

func (s *Service) SubmitApplication(ctx context.Context, app domain.VendorApplication) (domain.VendorApplication, error) {
	if err := domain.ValidateApplication(app); err != nil {
		return domain.VendorApplication{}, err
	}
	app.Status = domain.ApplicationStatusPending
	created, err := s.applications.Create(ctx, app)
	if err != nil {
		return domain.VendorApplication{}, err
	}
	s.publishEvent(ctx, "marketplace.application_submitted", created.ID, map[string]any{
		"application_id": created.ID, "telegram_id": created.TelegramID,
	})
	return created, nil
}

func (s *Service) UpdateApplication(ctx context.Context, id string, patch ports.Patch) (domain.VendorApplication, error) {
	updated, err := s.applications.Update(ctx, id, patch)
	if err != nil {
		return domain.VendorApplication{}, err
	}
	s.sendTelegram(ctx, updated.TelegramID,
		"📝 <b>Mise à jour de votre candidature</b>\n\nVotre candidature a été mise à jour. Vous serez notifié dès qu'elle aura été examinée.")
	return updated, nil
}

func (s *Service) DeleteApplication(ctx context.Context, id string) error {
	return s.applications.Delete(ctx, id)
}

// ApproveApplication turns a pending application into an active plug.
// Approval is one-way; a second approve (or approving a rejected
// application) is a conflict and creates nothing.
func (s *Service) ApproveApplication(ctx context.Context, id, reviewedBy string) (domain.Plug, error) {
	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return domain.Plug{}, err
	}
	if app.Status != domain.ApplicationStatusPending {
		return domain.Plug{}, fmt.Errorf("%w: cette candidature a déjà été examinée", domain.ErrConflict)
	}

	name := app.Username
	if name == "" {
		name = "Nouveau Plug"
	}
	photo := app.Photo
	if photo == "" {
		photo = app.ShopPhoto
	}
	countries := []string{"FR"}
	if app.Country != "" {
		countries = []string{app.Country}
	}

	plug, err := s.plugs.Create(ctx, domain.Plug{
		Name:           name,
		Photo:          photo,
		Description:    app.Description,
		Methods:        app.Methods,
		SocialNetworks: app.SocialNetworks,
		Location:       app.Location,
		Countries:      countries,
		Country:        app.Country,
		Department:     app.Department,
		PostalCode:     app.PostalCode,
		IsActive:       true,
	})
	if err != nil {
		return domain.Plug{}, err
	}

	if _, err := s.applications.Update(ctx, id, ports.Patch{
		"status":     string(domain.ApplicationStatusApproved),
		"reviewedBy": reviewedBy,
		"plugId":     plug.ID,
	}); err != nil {
		return domain.Plug{}, err
	}

	s.sendTelegram(ctx, app.TelegramID, fmt.Sprintf(
		"✅ <b>Félicitations !</b>\n\nVotre candidature a été approuvée. Votre profil <b>%s</b> est maintenant visible sur PLUGS CRTFS ! 🎉", plug.Name))
	s.notifyBot(ctx, "plug", "created", map[string]any{"_id": plug.ID, "name": plug.Name})
	s.publishEvent(ctx, "marketplace.application_approved", id, map[string]any{
		"application_id": id, "plug_id": plug.ID,
	})
	return plug, nil
}

func (s *Service) RejectApplication(ctx context.Context, id, reviewedBy, reason string) (domain.VendorApplication, error) {
	app, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return domain.VendorApplication{}, err
	}
	if app.Status != domain.ApplicationStatusPending {
		return domain.VendorApplication{}, fmt.Errorf("%w: cette candidature a déjà été examinée", domain.ErrConflict)
	}

	updated, err := s.applications.Update(ctx, id, ports.Patch{
		"status":     string(domain.ApplicationStatusRejected),
		"reviewedBy": reviewedBy,
	})
	if err != nil {
		return domain.VendorApplication{}, err
	}

	msg := "❌ <b>Candidature refusée</b>\n\nVotre candidature n'a pas été retenue cette fois-ci. Vous pouvez postuler à nouveau plus tard."
	if reason != "" {
		msg += fmt.Sprintf("\n\nMotif : %s", reason)
	}
	s.sendTelegram(ctx, app.TelegramID, msg)
	s.publishEvent(ctx, "marketplace.application_rejected", id, map[string]any{
		"application_id": id,
	})
	return updated, nil
}
