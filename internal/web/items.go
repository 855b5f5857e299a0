package web

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/erazemk/welcomehome/internal/imaging"
	"github.com/erazemk/welcomehome/internal/model"
	"github.com/erazemk/welcomehome/internal/service"
)

type findItemPage struct {
	PageData
	ItemID  string
	Details *service.ItemDetails
}

// FindItemPage handles GET /find_item.
func (s *Server) FindItemPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "find_item.html", &findItemPage{PageData: PageData{Title: "Find item"}})
}

// FindItemSubmit handles POST /find_item.
func (s *Server) FindItemSubmit(w http.ResponseWriter, r *http.Request) {
	data := &findItemPage{
		PageData: PageData{Title: "Find item"},
		ItemID:   strings.TrimSpace(r.FormValue("itemID")),
	}

	details, err := s.Services.Inventory.FindItem(r.Context(), data.ItemID)
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		data.Flashes = append(data.Flashes, danger("Error: Item ID must be a valid number."))
	case errors.Is(err, model.ErrItemNotFound):
		data.Flashes = append(data.Flashes, danger("No item found with ID %s.", data.ItemID))
	case err != nil:
		data.Flashes = append(data.Flashes, unexpected("find item", err))
	default:
		data.Details = details
		if len(details.Pieces) == 0 {
			data.Flashes = append(data.Flashes, warning("No pieces found for item ID %d.", details.Item.ID))
		}
	}

	s.render(w, r, "find_item.html", data)
}

// ItemPhoto handles GET /items/{id}/photo.
func (s *Server) ItemPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	data, mime, err := s.Services.Inventory.Photo(r.Context(), id)
	if errors.Is(err, model.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to get photo", "item", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write photo response", "error", err)
	}
}

type donationPage struct {
	PageData
	Form *service.DonationForm
}

const donationDenied = "Access denied. Only staff members can accept donations."

// AcceptDonationPage handles GET /accept_donation.
func (s *Server) AcceptDonationPage(w http.ResponseWriter, r *http.Request) {
	s.showDonationForm(w, r, nil)
}

func (s *Server) showDonationForm(w http.ResponseWriter, r *http.Request, flashes []Flash) {
	form, err := s.Services.Inventory.DonationForm(r.Context(), actor(r))
	if errors.Is(err, model.ErrAccessDenied) {
		s.redirect(w, r, "/dashboard", danger(donationDenied))
		return
	}
	if err != nil {
		s.redirect(w, r, "/dashboard", unexpected("load donation form", err))
		return
	}

	s.render(w, r, "accept_donation.html", &donationPage{
		PageData: PageData{Title: "Accept donation", Flashes: flashes},
		Form:     form,
	})
}

// AcceptDonationSubmit handles POST /accept_donation.
func (s *Server) AcceptDonationSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.showDonationForm(w, r, []Flash{danger("Error: The photo is too large.")})
		} else {
			s.showDonationForm(w, r, []Flash{danger("Error: The form could not be read. Please try again.")})
		}
		return
	}

	in, err := donationInput(r)
	if err != nil {
		s.showDonationForm(w, r, []Flash{danger("Error: %s", reason(err))})
		return
	}

	_, err = s.Services.Inventory.AcceptDonation(r.Context(), actor(r), in)
	switch {
	case err == nil:
		s.redirect(w, r, "/dashboard", success("Donation accepted successfully!"))
	case errors.Is(err, model.ErrAccessDenied):
		s.redirect(w, r, "/dashboard", danger(donationDenied))
	case errors.Is(err, model.ErrInvalidDonor):
		s.showDonationForm(w, r, []Flash{danger("Invalid donor ID or the user is not registered as a donor.")})
	case errors.Is(err, model.ErrValidation):
		s.showDonationForm(w, r, []Flash{danger("Error: %s", reason(err))})
	default:
		s.showDonationForm(w, r, []Flash{unexpected("accept donation", err)})
	}
}

// donationInput reads the accept-donation form, including the optional photo.
func donationInput(r *http.Request) (service.DonationInput, error) {
	in := service.DonationInput{
		DonorID:      r.FormValue("donorID"),
		Description:  r.FormValue("iDescription"),
		Color:        r.FormValue("color"),
		IsNew:        r.FormValue("isNew") == "yes",
		HasPieces:    r.FormValue("hasPieces") == "yes",
		Material:     r.FormValue("material"),
		MainCategory: r.FormValue("mainCategory"),
		SubCategory:  r.FormValue("subCategory"),
		PieceNotes:   r.FormValue("pNotes"),
	}

	ints := []struct {
		name string
		dst  *int
	}{
		{"roomNum", &in.RoomNum},
		{"shelfNum", &in.ShelfNum},
		{"length", &in.Length},
		{"width", &in.Width},
		{"height", &in.Height},
	}
	for _, f := range ints {
		raw := strings.TrimSpace(r.FormValue(f.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return in, fmt.Errorf("%w: %s must be a number", model.ErrInvalidInput, f.name)
		}
		*f.dst = n
	}

	file, _, err := r.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return in, nil
	}
	if err != nil {
		return in, fmt.Errorf("%w: unreadable photo upload", model.ErrInvalidInput)
	}
	defer file.Close()

	in.Photo, err = io.ReadAll(io.LimitReader(file, imaging.MaxUploadBytes+1))
	if err != nil {
		return in, fmt.Errorf("%w: unreadable photo upload", model.ErrInvalidInput)
	}
	return in, nil
}
