package main

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/ImmoNova/api-portal/internal/account"
	"github.com/ImmoNova/api-portal/internal/auth"
	"github.com/ImmoNova/api-portal/internal/config"
	"github.com/ImmoNova/api-portal/internal/contract"
	"github.com/ImmoNova/api-portal/internal/payment"
	"github.com/ImmoNova/api-portal/internal/property"
	"github.com/ImmoNova/api-portal/internal/utils/db"
	"github.com/ImmoNova/api-portal/internal/vefamilestone"
	"github.com/ImmoNova/api-portal/internal/vefaproject"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("could not connect to database:", err)
	}

	migrations := []func(*gorm.DB) error{
		account.Migrate,
		property.Migrate,
		contract.Migrate,
		payment.Migrate,
		vefaproject.Migrate,
		vefamilestone.Migrate,
	}
	for _, migrate := range migrations {
		if err := migrate(database); err != nil {
			log.Fatal("automigrate failed:", err)
		}
	}

	// Handlers
	accountHandler := account.NewHandler(database)
	propertyHandler := property.NewHandler(database)
	contractHandler := contract.NewHandler(database, cfg.OverdueWebhookURL)
	projectHandler := vefaproject.NewHandler(database)

	// Router
	r := mux.NewRouter()

	protected := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(h)
	}
	staff := func(h http.HandlerFunc) http.Handler {
		return auth.Middleware(auth.RequireStaff(h))
	}

	// Auth & accounts
	r.HandleFunc("/login", accountHandler.Login).Methods("POST")
	r.Handle("/me", protected(accountHandler.Me)).Methods("GET")
	r.Handle("/accounts", staff(accountHandler.Create)).Methods("POST")
	r.Handle("/accounts", protected(accountHandler.List)).Methods("GET")
	r.Handle("/accounts/{id}", protected(accountHandler.Get)).Methods("GET")
	r.Handle("/accounts/{id}", protected(accountHandler.Update)).Methods("PUT")
	r.Handle("/accounts/{id}", staff(accountHandler.Delete)).Methods("DELETE")

	// Property catalog; reads are open, the Access Gate filters them by tier
	r.HandleFunc("/properties", propertyHandler.List).Methods("GET")
	r.HandleFunc("/properties/{id}", propertyHandler.Get).Methods("GET")
	r.Handle("/properties", staff(propertyHandler.Create)).Methods("POST")
	r.Handle("/properties/{id}", staff(propertyHandler.Update)).Methods("PUT")
	r.Handle("/properties/{id}", staff(propertyHandler.Delete)).Methods("DELETE")
	r.Handle("/properties/{id}/exclusivity", staff(propertyHandler.Grant)).Methods("POST")
	r.Handle("/properties/{id}/exclusivity", staff(propertyHandler.Revoke)).Methods("DELETE")

	// Contract ledger
	r.Handle("/contracts", staff(contractHandler.Create)).Methods("POST")
	r.Handle("/contracts", protected(contractHandler.List)).Methods("GET")
	r.Handle("/contracts/{id}", protected(contractHandler.Get)).Methods("GET")
	r.Handle("/contracts/{id}/progress", protected(contractHandler.Progress)).Methods("GET")
	r.Handle("/contracts/{id}/installments", protected(contractHandler.Installments)).Methods("GET")
	r.Handle("/contracts/{id}/next-due", protected(contractHandler.NextDue)).Methods("GET")
	r.Handle("/contracts/{id}/payments", staff(contractHandler.RecordPayment)).Methods("POST")
	r.Handle("/contracts/{id}/payments", protected(contractHandler.ListPayments)).Methods("GET")
	r.Handle("/contracts/{id}/status", staff(contractHandler.UpdateStatus)).Methods("PATCH")

	// VEFA projects & milestones (admin tooling)
	r.Handle("/vefa-projects", staff(projectHandler.Create)).Methods("POST")
	r.Handle("/vefa-projects", staff(projectHandler.List)).Methods("GET")
	r.Handle("/vefa-projects/{id}", staff(projectHandler.Get)).Methods("GET")
	r.Handle("/vefa-projects/{id}", staff(projectHandler.Update)).Methods("PUT")
	r.Handle("/vefa-projects/{id}", staff(projectHandler.Delete)).Methods("DELETE")
	r.Handle("/vefa-projects/{id}/budget", staff(projectHandler.Budget)).Methods("GET")
	r.Handle("/vefa-projects/{id}/milestones", staff(projectHandler.AddMilestone)).Methods("POST")
	r.Handle("/vefa-projects/{id}/milestones/{mid}", staff(projectHandler.UpdateMilestone)).Methods("PUT")
	r.Handle("/vefa-projects/{id}/milestones/{mid}/pay", staff(projectHandler.PayMilestone)).Methods("POST")
	r.Handle("/vefa-projects/{id}/milestones/{mid}", staff(projectHandler.RemoveMilestone)).Methods("DELETE")

	c := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSAllowedOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	addr := ":" + cfg.ServerPort
	fmt.Println("server listening on", addr)
	log.Fatal(http.ListenAndServe(addr, c.Handler(r)))
}
