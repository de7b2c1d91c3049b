package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/couchcryptid/disaster-helper/internal/domain"
	"github.com/couchcryptid/disaster-helper/internal/service"
)

// maxUploadBytes bounds a single document upload.
const maxUploadBytes = 10 << 20

// --- alerts ---

func (s *Server) listAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.svc.Alerts.List(r.Context(), sessionOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) createAlert(w http.ResponseWriter, r *http.Request) {
	var in domain.AlertInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	alert, err := s.svc.Alerts.Create(r.Context(), sessionOf(r), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, alert)
}

func (s *Server) updateAlert(w http.ResponseWriter, r *http.Request) {
	var in domain.AlertInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	alert, err := s.svc.Alerts.Update(r.Context(), sessionOf(r), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

func (s *Server) deleteAlert(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Alerts.Delete(r.Context(), sessionOf(r), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- resources ---

func (s *Server) listResources(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	typ := domain.ResourceType(q.Get("type"))
	if typ != "" && !typ.Valid() {
		s.writeError(w, r, &domain.ValidationError{Field: "type", Message: "unsupported resource type"})
		return
	}
	resources, err := s.svc.Resources.List(r.Context(), sessionOf(r), typ, q.Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resources)
}

func (s *Server) createResource(w http.ResponseWriter, r *http.Request) {
	var in domain.ResourceInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.svc.Resources.Create(r.Context(), sessionOf(r), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) updateResource(w http.ResponseWriter, r *http.Request) {
	var in domain.ResourceInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.svc.Resources.Update(r.Context(), sessionOf(r), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) deleteResource(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Resources.Delete(r.Context(), sessionOf(r), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- contacts ---

func (s *Server) listContacts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	typ := domain.ContactType(q.Get("type"))
	if typ != "" && !typ.Valid() {
		s.writeError(w, r, &domain.ValidationError{Field: "type", Message: "unsupported contact type"})
		return
	}
	contacts, err := s.svc.Contacts.List(r.Context(), sessionOf(r), typ, q.Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (s *Server) createContact(w http.ResponseWriter, r *http.Request) {
	var in domain.ContactInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Contacts.Create(r.Context(), sessionOf(r), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateContact(w http.ResponseWriter, r *http.Request) {
	var in domain.ContactInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.svc.Contacts.Update(r.Context(), sessionOf(r), r.PathValue("id"), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Contacts.Delete(r.Context(), sessionOf(r), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// --- profile ---

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.svc.Profile.Get(r.Context(), sessionOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) putProfile(w http.ResponseWriter, r *http.Request) {
	var in domain.ProfileInfo
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.svc.Profile.Save(r.Context(), sessionOf(r), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type visitedBody struct {
	Visited bool `json:"visited"`
}

func (s *Server) getVisited(w http.ResponseWriter, r *http.Request) {
	v, err := s.svc.Profile.Visited(r.Context(), sessionOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, visitedBody{Visited: v})
}

func (s *Server) putVisited(w http.ResponseWriter, r *http.Request) {
	var in visitedBody
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Profile.SetVisited(r.Context(), sessionOf(r), in.Visited); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, in)
}

// --- chat ---

func (s *Server) chatHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.svc.Chat.History(r.Context(), sessionOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

type chatRequest struct {
	Content string `json:"content"`
}

func (s *Server) sendChat(w http.ResponseWriter, r *http.Request) {
	var in chatRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	reply, err := s.svc.Chat.Send(r.Context(), sessionOf(r), in.Content)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (s *Server) clearChat(w http.ResponseWriter, r *http.Request) {
	history, err := s.svc.Chat.Clear(r.Context(), sessionOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, history)
}

// --- store ---

func (s *Server) catalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Shop.Catalog())
}

func (s *Server) getCart(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.Shop.Cart(r.Context(), sessionOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type addItemRequest struct {
	ItemID string `json:"itemId"`
}

func (s *Server) addCartItem(w http.ResponseWriter, r *http.Request) {
	var in addItemRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if strings.TrimSpace(in.ItemID) == "" {
		s.writeError(w, r, &domain.ValidationError{Field: "itemId", Message: "is required"})
		return
	}
	out, err := s.svc.Shop.AddItem(r.Context(), sessionOf(r), in.ItemID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (s *Server) setCartQuantity(w http.ResponseWriter, r *http.Request) {
	var in quantityRequest
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	out, err := s.svc.Shop.SetQuantity(r.Context(), sessionOf(r), r.PathValue("id"), in.Quantity)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) removeCartItem(w http.ResponseWriter, r *http.Request) {
	out, err := s.svc.Shop.RemoveItem(r.Context(), sessionOf(r), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// --- weather and SOS ---

func (s *Server) weather(w http.ResponseWriter, r *http.Request) {
	at, err := coordinatesFromQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.Weather.Report(r.Context(), at))
}

type sosRequest struct {
	Location *domain.Coordinates `json:"location"`
}

// sos accepts an empty body as "location unavailable".
func (s *Server) sos(w http.ResponseWriter, r *http.Request) {
	var in sosRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &in); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if err := checkCoordinates(in.Location); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.svc.SOS.Build(r.Context(), in.Location))
}

// --- hosted features ---

func (s *Server) listBlogPosts(w http.ResponseWriter, r *http.Request) {
	feed, err := s.svc.Blog.Feed(r.Context(), userOf(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

func (s *Server) createBlogPost(w http.ResponseWriter, r *http.Request) {
	var in domain.BlogPostInput
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	post, err := s.svc.Blog.Publish(r.Context(), userOf(r), in)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) uploadDocument(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, &domain.ValidationError{Field: "file", Message: "exceeds the upload size limit"})
			return
		}
		s.writeError(w, r, &domain.ValidationError{Field: "file", Message: "is required"})
		return
	}
	defer file.Close()

	doc, err := s.svc.Documents.Upload(r.Context(), userOf(r), service.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, doc)
}

type urlResponse struct {
	URL string `json:"url"`
}

func (s *Server) documentURL(w http.ResponseWriter, r *http.Request) {
	url, err := s.svc.Documents.URL(r.Context(), userOf(r), r.URL.Query().Get("key"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, urlResponse{URL: url})
}

type statusResponse struct {
	Status string `json:"status"`
}

func (s *Server) submitVolunteer(w http.ResponseWriter, r *http.Request) {
	var in domain.VolunteerApplication
	if err := decodeJSON(w, r, &in); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.svc.Volunteers.Submit(r.Context(), in); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, statusResponse{Status: "submitted"})
}
