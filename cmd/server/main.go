package main

import (
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"blackjack-lite/internal/gateway"
	"blackjack-lite/internal/history"
	"blackjack-lite/internal/lobby"
	"blackjack-lite/internal/table"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Printf("[Server] Loaded .env")
	}

	historyService, historyMode, err := history.NewServiceFromEnv()
	if err != nil {
		log.Fatalf("[Server] Failed to init history service: %v", err)
	}
	defer historyService.Close()

	cfg := table.TableConfig{
		MaxSeats:          envInt("TABLE_MAX_SEATS", 6),
		CountdownSeconds:  envInt("COUNTDOWN_SECONDS", 5),
		HitsSoftSeventeen: envBool("DEALER_HITS_SOFT_17", true),
	}

	lby := lobby.New(cfg, historyService)
	defer lby.Shutdown()
	gw := gateway.New(lby)
	historyHTTP := history.NewHTTPHandler(historyService)

	router := chi.NewRouter()
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Get("/ws", gw.HandleWebSocket)
	historyHTTP.RegisterRoutes(router)

	httpAddr := envStr("HTTP_ADDR", ":8080")
	go func() {
		log.Printf("[Server] HTTP listening on %s", httpAddr)
		if err := http.ListenAndServe(httpAddr, router); err != nil {
			log.Fatalf("[Server] HTTP server failed: %v", err)
		}
	}()

	listenAddr := envStr("LISTEN_ADDR", ":5555")
	ln, err := net.Listen("tcp", listenAddr)
	if err != nil {
		log.Fatalf("[Server] Failed to listen on %s: %v", listenAddr, err)
	}
	log.Printf("[Server] History mode: %s", historyMode)
	log.Printf("[Server] Table config: seats=%d countdown=%ds hitsSoft17=%v",
		cfg.MaxSeats, cfg.CountdownSeconds, cfg.HitsSoftSeventeen)
	log.Printf("[Server] Accepting players on %s", listenAddr)
	if err := gw.Serve(ln); err != nil {
		log.Fatalf("[Server] Accept loop failed: %v", err)
	}
}

func envStr(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	raw := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	switch raw {
	case "":
		return fallback
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
