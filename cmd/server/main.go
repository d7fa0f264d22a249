package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/skyps2003/Freelancer/internal/api/authapi"
	"github.com/skyps2003/Freelancer/internal/api/messages"
	"github.com/skyps2003/Freelancer/internal/api/notifications"
	"github.com/skyps2003/Freelancer/internal/api/offers"
	"github.com/skyps2003/Freelancer/internal/api/payments"
	"github.com/skyps2003/Freelancer/internal/api/products"
	"github.com/skyps2003/Freelancer/internal/api/projects"
	"github.com/skyps2003/Freelancer/internal/api/proposals"
	"github.com/skyps2003/Freelancer/internal/api/users"
	"github.com/skyps2003/Freelancer/internal/config"
	"github.com/skyps2003/Freelancer/internal/middleware"
	"github.com/skyps2003/Freelancer/internal/storage"
	"github.com/skyps2003/Freelancer/internal/storage/memory"
	"github.com/skyps2003/Freelancer/internal/storage/mongodb"
	"github.com/skyps2003/Freelancer/internal/storage/valkeycache"
	"github.com/skyps2003/Freelancer/internal/ws"
)

type stores struct {
	users         storage.UserStore
	products      storage.ProductStore
	offers        storage.OfferStore
	projects      storage.ProjectStore
	proposals     storage.ProposalStore
	transactions  storage.TransactionStore
	messages      storage.MessageStore
	notifications storage.NotificationStore
}

func main() {
	cfg := config.Load()

	st, cleanup := buildStores(cfg)
	defer cleanup()

	var unread *valkeycache.UnreadCounter
	if cfg.Valkey.Addr != "" {
		var err error
		unread, err = valkeycache.NewUnreadCounter(cfg.Valkey.Addr)
		if err != nil {
			log.Fatalf("Failed to connect to valkey: %v", err)
		}
		defer unread.Close()
		log.Println("Unread counters cached in Valkey")
	}

	hub := ws.NewHub()
	go hub.Run()

	notifier := &notifications.Notifier{Store: st.notifications, Unread: unread}
	authMW := middleware.Auth(cfg.JWT.Secret)

	r := mux.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigin))

	// Uploaded avatars, product images and CVs.
	r.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	apiRouter := r.PathPrefix("/api").Subrouter()

	authapi.RegisterRoutes(apiRouter, &authapi.Handler{Users: st.users, JWT: cfg.JWT}, authMW)
	users.RegisterRoutes(apiRouter, &users.Handler{Users: st.users, UploadDir: cfg.UploadDir}, authMW)
	products.RegisterRoutes(apiRouter, &products.Handler{
		Products: st.products, Users: st.users, UploadDir: cfg.UploadDir,
	}, authMW)
	offers.RegisterRoutes(apiRouter, &offers.Handler{
		Offers: st.offers, Users: st.users, UploadDir: cfg.UploadDir,
	}, authMW)
	projects.RegisterRoutes(apiRouter, &projects.Handler{
		Projects: st.projects, Proposals: st.proposals, Users: st.users,
	}, authMW)
	proposals.RegisterRoutes(apiRouter, &proposals.Handler{
		Proposals: st.proposals, Projects: st.projects,
	}, authMW)
	payments.RegisterRoutes(apiRouter, &payments.Handler{
		Transactions: st.transactions, Projects: st.projects,
		Products: st.products, Users: st.users, Notifier: notifier,
	}, authMW)
	notifications.RegisterRoutes(apiRouter, &notifications.Handler{
		Notifications: st.notifications, Unread: unread,
	}, authMW)

	msgHandler := &messages.Handler{
		Messages: st.messages, Users: st.users, Products: st.products,
		Notifier: notifier, Hub: hub, JWTSecret: cfg.JWT.Secret,
	}
	messages.RegisterRoutes(apiRouter, msgHandler, authMW)
	messages.RegisterWSRoute(r, msgHandler)

	log.Printf("Server started at %s", cfg.Server.Addr())
	log.Fatal(http.ListenAndServe(cfg.Server.Addr(), r))
}

// buildStores selects the document store when MONGO_URI is set, and the
// in-memory store otherwise.
func buildStores(cfg *config.Config) (*stores, func()) {
	if cfg.Mongo.URI == "" {
		log.Println("MONGO_URI not set, using in-memory stores")
		return &stores{
			users:         memory.NewUserStore(),
			products:      memory.NewProductStore(),
			offers:        memory.NewOfferStore(),
			projects:      memory.NewProjectStore(),
			proposals:     memory.NewProposalStore(),
			transactions:  memory.NewTransactionStore(),
			messages:      memory.NewMessageStore(),
			notifications: memory.NewNotificationStore(),
		}, func() {}
	}

	db, closeFn, err := mongodb.Connect(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	return &stores{
		users:         mongodb.NewUserStore(db),
		products:      mongodb.NewProductStore(db),
		offers:        mongodb.NewOfferStore(db),
		projects:      mongodb.NewProjectStore(db),
		proposals:     mongodb.NewProposalStore(db),
		transactions:  mongodb.NewTransactionStore(db),
		messages:      mongodb.NewMessageStore(db),
		notifications: mongodb.NewNotificationStore(db),
	}, closeFn
}
