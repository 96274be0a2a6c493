package web

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"sparkmeals/models"
	"sparkmeals/services"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

const orderPlacedMessage = "Order placed successfully! You will receive a WhatsApp confirmation shortly."

type menuView struct {
	Query      string
	Category   string
	Categories []string
	Meals      []models.Meal
}

type orderStatus struct {
	Success bool
	Message string
}

type orderView struct {
	Meal     models.Meal
	Quantity int
	Form     models.FormData
	Errors   services.FieldErrors
	Status   *orderStatus
	Subtotal decimal.Decimal
	Fee      decimal.Decimal
	Total    decimal.Decimal
}

func (s *Server) render(w http.ResponseWriter, status int, page string, data any) {
	tmpl, ok := s.pages[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("render page=%s: %v", page, err)
	}
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "home.gohtml", nil)
}

func (s *Server) menu(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	category := q.Get("category")
	if category == "" {
		category = models.CategoryAll
	}
	s.render(w, http.StatusOK, "menu.gohtml", menuView{
		Query:      q.Get("q"),
		Category:   category,
		Categories: services.UniqueCategories(),
		Meals:      services.FilterMeals(q.Get("q"), category),
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "Not found"})
		return
	}
	s.render(w, http.StatusNotFound, "notfound.gohtml", nil)
}

func (s *Server) newOrderView(meal *models.Meal, quantity int, form models.FormData) orderView {
	fee := s.relay.Fee()
	return orderView{
		Meal:     *meal,
		Quantity: quantity,
		Form:     form,
		Subtotal: services.Subtotal(meal.Price, quantity),
		Fee:      fee,
		Total:    services.CalcTotal(meal.Price, quantity, fee),
	}
}

func (s *Server) orderPage(w http.ResponseWriter, r *http.Request) {
	meal, ok := services.GetMealByIDString(mux.Vars(r)["id"])
	if !ok {
		s.notFound(w, r)
		return
	}
	s.render(w, http.StatusOK, "order.gohtml", s.newOrderView(meal, 1, models.FormData{}))
}

// placeOrder validates the form and relays the confirmation server-side.
func (s *Server) placeOrder(w http.ResponseWriter, r *http.Request) {
	meal, ok := services.GetMealByIDString(mux.Vars(r)["id"])
	if !ok {
		s.notFound(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := models.FormData{
		FullName:     strings.TrimSpace(r.PostForm.Get("fullName")),
		PhoneNumber:  strings.TrimSpace(r.PostForm.Get("phoneNumber")),
		Email:        strings.TrimSpace(r.PostForm.Get("email")),
		Address:      strings.TrimSpace(r.PostForm.Get("address")),
		Instructions: strings.TrimSpace(r.PostForm.Get("instructions")),
	}
	quantity, err := strconv.Atoi(strings.TrimSpace(r.PostForm.Get("quantity")))
	if err != nil {
		quantity = 0
	}

	if err := services.ValidateOrderForm(form, quantity); err != nil {
		view := s.newOrderView(meal, max(quantity, 1), form)
		var fe services.FieldErrors
		errors.As(err, &fe)
		view.Errors = fe
		s.render(w, http.StatusUnprocessableEntity, "order.gohtml", view)
		return
	}

	view := s.newOrderView(meal, quantity, form)
	total := models.NewAmount(view.Total)
	_, err = s.relay.Send(r.Context(), services.SendRequest{
		Phone: form.PhoneNumber,
		OrderDetails: &models.OrderDetails{
			Meal:     *meal,
			Quantity: quantity,
			FormData: form,
			Total:    &total,
		},
	})
	if err != nil {
		status, body := s.relayError(err)
		if status < http.StatusInternalServerError {
			status = http.StatusBadGateway
		}
		msg, _ := body["error"].(string)
		view.Status = &orderStatus{Success: false, Message: msg}
		s.render(w, status, "order.gohtml", view)
		return
	}
	s.metrics.WhatsAppSends.WithLabelValues("ok").Inc()

	reset := s.newOrderView(meal, 1, models.FormData{})
	reset.Status = &orderStatus{Success: true, Message: orderPlacedMessage}
	s.render(w, http.StatusOK, "order.gohtml", reset)
}
