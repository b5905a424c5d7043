package pos

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"restaurant-pos/internal/database/models"
	"restaurant-pos/internal/store"
)

func (s *Service) defaultSettings() models.Settings {
	return models.Settings{UPIID: s.opts.DefaultUPIID}
}

// GetSettings returns the saved settings. A missing or unreadable record, or
// one with a blank UPI id, falls back to the configured default id.
func (s *Service) GetSettings(ctx context.Context) models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadSettings(ctx)
}

func (s *Service) loadSettings(ctx context.Context) models.Settings {
	settings, status := store.Read(ctx, s.store, s.keys.settings, s.defaultSettings())
	s.logFallback(s.keys.settings, status)
	if strings.TrimSpace(settings.UPIID) == "" {
		settings.UPIID = s.opts.DefaultUPIID
	}
	if settings.QRURLOverride != nil && strings.TrimSpace(*settings.QRURLOverride) == "" {
		settings.QRURLOverride = nil
	}
	return settings
}

// SetSettings stores the UPI id and QR override. A blank id resets to the
// default; a blank override clears it.
func (s *Service) SetSettings(ctx context.Context, upiID, qrURL string) (models.Settings, error) {
	settings := s.defaultSettings()
	if id := strings.TrimSpace(upiID); id != "" {
		settings.UPIID = id
	}
	if qr := strings.TrimSpace(qrURL); qr != "" {
		settings.QRURLOverride = &qr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := store.Write(ctx, s.store, s.keys.settings, settings); err != nil {
		return models.Settings{}, wrapOp("save settings", err)
	}
	s.logger.Info("settings saved", zap.String("upi_id", settings.UPIID), zap.Bool("qr_override", settings.QRURLOverride != nil))
	return settings, nil
}
