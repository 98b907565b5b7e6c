package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"curbside-auctions/internal/auth"
	"curbside-auctions/internal/domain/auction"
	"curbside-auctions/internal/domain/shared"
	"curbside-auctions/internal/ports/inbound"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler contains dependencies for HTTP handlers.
type Handler struct {
	auctions    inbound.AuctionService
	bids        inbound.BidService
	settings    inbound.SettingsService
	authService *auth.AuthService
	logger      zerolog.Logger
	now         func() time.Time
}

type HandlerParams struct {
	Auctions    inbound.AuctionService
	Bids        inbound.BidService
	Settings    inbound.SettingsService
	AuthService *auth.AuthService
	Logger      zerolog.Logger
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// NewHandler creates a new API handler.
func NewHandler(params HandlerParams) *Handler {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Handler{
		auctions:    params.Auctions,
		bids:        params.Bids,
		settings:    params.Settings,
		authService: params.AuthService,
		logger:      params.Logger.With().Str("component", "api").Logger(),
		now:         now,
	}
}

// auctionView is a listing plus its clock-derived state.
type auctionView struct {
	auction.Auction
	Status       auction.Status `json:"status"`
	CurrentPrice float64        `json:"current_price"`
	ClosesAt     time.Time      `json:"closes_at"`
	UntilStart   int            `json:"until_start_secs"`
	UntilEnd     int            `json:"until_end_secs"`
}

func (h *Handler) view(r *http.Request, a auction.Auction) (auctionView, error) {
	price, err := h.bids.CurrentPrice(r.Context(), a.Slug)
	if err != nil {
		return auctionView{}, err
	}
	now := h.now()
	remaining := a.TimeRemaining(now)
	return auctionView{
		Auction:      a,
		Status:       a.Status(now),
		CurrentPrice: price,
		ClosesAt:     a.ClosesAt(),
		UntilStart:   int(remaining.UntilStart.Seconds()),
		UntilEnd:     int(remaining.UntilEnd.Seconds()),
	}, nil
}

// ListAuctions returns all listings with derived status and price.
func (h *Handler) ListAuctions(w http.ResponseWriter, r *http.Request) {
	auctions, err := h.auctions.ListAuctions(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}

	views := make([]auctionView, 0, len(auctions))
	for _, a := range auctions {
		v, err := h.view(r, a)
		if err != nil {
			h.writeError(w, err)
			return
		}
		views = append(views, v)
	}
	h.writeJSON(w, http.StatusOK, views)
}

// GetAuction returns one listing with derived status and price.
func (h *Handler) GetAuction(w http.ResponseWriter, r *http.Request) {
	a, err := h.auctions.GetAuction(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	v, err := h.view(r, *a)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, v)
}

// GetBids returns the bid history for a listing.
func (h *Handler) GetBids(w http.ResponseWriter, r *http.Request) {
	bids, err := h.bids.GetBids(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, bids)
}

// PlaceBid validates and records a bid.
func (h *Handler) PlaceBid(w http.ResponseWriter, r *http.Request) {
	var req inbound.PlaceBidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.Slug = chi.URLParam(r, "slug")

	result, err := h.bids.PlaceBid(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, result)
}

// BuyNow settles a listing at its buy-now price.
func (h *Handler) BuyNow(w http.ResponseWriter, r *http.Request) {
	var req inbound.BuyNowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	req.Slug = chi.URLParam(r, "slug")

	result, err := h.bids.BuyNow(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, result)
}

// Login verifies admin credentials and returns a session token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	token, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

// CreateAuction creates a listing (admin).
func (h *Handler) CreateAuction(w http.ResponseWriter, r *http.Request) {
	var req inbound.SaveAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	a, err := h.auctions.CreateAuction(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, a)
}

// UpdateAuction updates a listing, migrating bids on slug rename (admin).
func (h *Handler) UpdateAuction(w http.ResponseWriter, r *http.Request) {
	var req inbound.SaveAuctionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	a, err := h.auctions.UpdateAuction(r.Context(), chi.URLParam(r, "slug"), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

// DeleteAuction removes a listing and its bids (admin).
func (h *Handler) DeleteAuction(w http.ResponseWriter, r *http.Request) {
	if err := h.auctions.DeleteAuction(r.Context(), chi.URLParam(r, "slug")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSettings returns the settings singleton (admin). The password hash is
// never exposed.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.settings.Load(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	sanitized := *cfg
	sanitized.AdminPassHash = ""
	h.writeJSON(w, http.StatusOK, sanitized)
}

// SaveSettings applies a settings update (admin).
func (h *Handler) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req inbound.SaveSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	cfg, err := h.settings.Save(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	sanitized := *cfg
	sanitized.AdminPassHash = ""
	h.writeJSON(w, http.StatusOK, sanitized)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "curbside-auctions"})
}

// AdminMiddleware verifies the session token on admin routes.
func (h *Handler) AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if token == "" {
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "authorization header required"})
			return
		}

		session, err := h.authService.VerifyToken(token)
		if err != nil {
			h.writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid or expired token"})
			return
		}

		next.ServeHTTP(w, r.WithContext(auth.WithSession(r.Context(), session)))
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

// writeError maps domain errors onto HTTP status codes: validation
// rejections become 422, missing records 404, slug conflicts 409.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, shared.ErrAuctionNotFound), errors.Is(err, shared.ErrSettingsNotFound):
		status = http.StatusNotFound
	case errors.Is(err, shared.ErrSlugTaken):
		status = http.StatusConflict
	case errors.Is(err, shared.ErrInvalidCredentials), errors.Is(err, shared.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, shared.ErrAuctionNotOpen),
		errors.Is(err, shared.ErrInvalidAmount),
		errors.Is(err, shared.ErrBidTooLow),
		errors.Is(err, shared.ErrIncrementOutOfBounds),
		errors.Is(err, shared.ErrBuyNowUnavailable),
		errors.Is(err, shared.ErrInvalidSlug),
		errors.Is(err, shared.ErrInvalidDuration),
		errors.Is(err, shared.ErrInvalidAmounts),
		errors.Is(err, shared.ErrIncrementOrder),
		errors.Is(err, shared.ErrInvalidStartTime):
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Msg("Internal error")
		h.writeJSON(w, status, map[string]string{"error": "internal error"})
		return
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
