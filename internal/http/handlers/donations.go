package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wfm/internal/domain"
	"wfm/internal/service"
)

type donationLineDTO struct {
	ItemID          string  `json:"item_id"`
	Quantity        float64 `json:"quantity"`
	ItemDescription string  `json:"item_description,omitempty"`
	ItemType        string  `json:"item_type,omitempty"`
}

type donationDTO struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	EventID     string            `json:"event_id"`
	Direction   string            `json:"direction"`
	Description string            `json:"description"`
	Date        string            `json:"date"`
	Items       []donationLineDTO `json:"items,omitempty"`
}

func toDonationDTO(d domain.Donation) donationDTO {
	dto := donationDTO{
		ID:          d.ID,
		UserID:      d.UserID,
		EventID:     d.EventID,
		Direction:   string(d.Direction),
		Description: d.Description,
		Date:        formatDate(d.Date),
	}
	for _, line := range d.Items {
		dto.Items = append(dto.Items, toLineDTO(line))
	}
	return dto
}

func toLineDTO(line domain.DonationItem) donationLineDTO {
	return donationLineDTO{
		ItemID:          line.ItemID,
		Quantity:        line.Quantity,
		ItemDescription: line.ItemDescription,
		ItemType:        string(line.ItemType),
	}
}

type lineRequest struct {
	ItemID   string  `json:"item_id"`
	Quantity float64 `json:"quantity"`
}

type donationRequest struct {
	UserID      string        `json:"user_id"`
	EventID     string        `json:"event_id"`
	Direction   string        `json:"direction"`
	Description string        `json:"description"`
	Date        string        `json:"date"`
	Items       []lineRequest `json:"items"`
}

// DonationsRecord records a donation with its items. user_id defaults to the
// caller.
func (a *App) DonationsRecord(w http.ResponseWriter, r *http.Request) {
	var req donationRequest
	if !a.decode(w, r, &req) {
		return
	}
	date, err := parseDate("date", req.Date)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	in := service.RecordDonation{
		UserID:      req.UserID,
		EventID:     req.EventID,
		Direction:   domain.Direction(req.Direction),
		Description: req.Description,
		Date:        date,
	}
	if in.UserID == "" {
		in.UserID = a.currentUserID(r)
	}
	for _, line := range req.Items {
		in.Items = append(in.Items, domain.ItemQuantity{ItemID: line.ItemID, Quantity: line.Quantity})
	}
	d, err := a.Donations.Record(r.Context(), in)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusCreated, toDonationDTO(*d))
}

func (a *App) DonationsGet(w http.ResponseWriter, r *http.Request) {
	d, err := a.Donations.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, toDonationDTO(*d))
}

// DonationsByEvent lists the event's donations by event id.
func (a *App) DonationsByEvent(w http.ResponseWriter, r *http.Request) {
	list, err := a.Donations.ListByEvent(r.Context(), chi.URLParam(r, "event"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]donationDTO, 0, len(list))
	for _, d := range list {
		items = append(items, toDonationDTO(d))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) DonationsListItems(w http.ResponseWriter, r *http.Request) {
	lines, err := a.Donations.ListItems(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]donationLineDTO, 0, len(lines))
	for _, line := range lines {
		items = append(items, toLineDTO(line))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) DonationsAddItem(w http.ResponseWriter, r *http.Request) {
	var req lineRequest
	if !a.decode(w, r, &req) {
		return
	}
	if err := a.Donations.AddItem(r.Context(), chi.URLParam(r, "id"), req.ItemID, req.Quantity); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

type quantityRequest struct {
	Quantity float64 `json:"quantity"`
}

func (a *App) DonationsUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req quantityRequest
	if !a.decode(w, r, &req) {
		return
	}
	err := a.Donations.UpdateQuantity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "item"), req.Quantity)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) DonationsRemoveItem(w http.ResponseWriter, r *http.Request) {
	if err := a.Donations.RemoveItem(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "item")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *App) DonationsDelete(w http.ResponseWriter, r *http.Request) {
	if err := a.Donations.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		a.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type totalDTO struct {
	ItemID          string  `json:"item_id"`
	ItemDescription string  `json:"item_description"`
	ItemType        string  `json:"item_type"`
	Direction       string  `json:"direction"`
	Total           float64 `json:"total"`
}

// DonationsTotals reports the event's inventory: totals per item and direction.
func (a *App) DonationsTotals(w http.ResponseWriter, r *http.Request) {
	totals, err := a.Donations.EventTotals(r.Context(), chi.URLParam(r, "event"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	items := make([]totalDTO, 0, len(totals))
	for _, t := range totals {
		items = append(items, totalDTO{
			ItemID:          t.ItemID,
			ItemDescription: t.ItemDescription,
			ItemType:        string(t.ItemType),
			Direction:       string(t.Direction),
			Total:           t.Total,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
