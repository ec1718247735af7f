package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/edufocus/liveclass/internal/api"
	"github.com/edufocus/liveclass/internal/channel"
	"github.com/edufocus/liveclass/internal/focus"
	"github.com/edufocus/liveclass/internal/gaze"
	"github.com/edufocus/liveclass/internal/models"
	"github.com/edufocus/liveclass/internal/notify"
	"github.com/edufocus/liveclass/internal/render"
	"github.com/edufocus/liveclass/internal/repositories/samples"
	"github.com/edufocus/liveclass/internal/services/live"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env file: %v", err)
	}

	// Required identity and session settings
	token := getEnv("TOKEN", "")
	if token == "" {
		log.Fatal("TOKEN environment variable is required")
	}

	sessionID := getEnv("SESSION_ID", "")
	if sessionID == "" {
		log.Fatal("SESSION_ID environment variable is required")
	}

	userID := getEnv("USER_ID", "")
	if userID == "" {
		log.Fatal("USER_ID environment variable is required")
	}

	userName := getEnv("USER_NAME", userID)

	role := models.Role(getEnv("ROLE", string(models.RoleStudent)))
	if role != models.RoleStudent && role != models.RoleInstructor {
		log.Fatalf("ROLE must be %q or %q", models.RoleStudent, models.RoleInstructor)
	}

	// Initialize the API client
	apiClient, err := api.New(&api.Config{
		BaseURL: getEnv("API_URL", "http://localhost:8000"),
		Token:   token,
		OnUnauthorized: func() {
			log.Println("Credential rejected, returning to login")
		},
	})
	if err != nil {
		log.Fatalf("Failed to create API client: %v", err)
	}

	// Initialize the session channel
	ch, err := channel.New(&channel.Config{
		BaseURL:  getEnv("WS_URL", "ws://localhost:8000"),
		UserID:   userID,
		UserName: userName,
		Role:     role,
	})
	if err != nil {
		log.Fatalf("Failed to create session channel: %v", err)
	}

	// Initialize the notifier
	notifier, err := notify.New(&notify.Config{
		Sink: &logSink{},
	})
	if err != nil {
		log.Fatalf("Failed to create notifier: %v", err)
	}
	defer notifier.Close()

	// Students carry a sampler and a gaze source
	frameWidth := getEnvFloat("FRAME_WIDTH", 1280)
	frameHeight := getEnvFloat("FRAME_HEIGHT", 720)

	var sampler *focus.Sampler
	var gazeSource gaze.Source
	if role == models.RoleStudent {
		sampler, err = focus.New(&focus.Config{
			FrameWidth:  frameWidth,
			FrameHeight: frameHeight,
		})
		if err != nil {
			log.Fatalf("Failed to create focus sampler: %v", err)
		}

		gazeSource, err = gaze.NewSynthetic(&gaze.SyntheticConfig{
			FrameWidth:  frameWidth,
			FrameHeight: frameHeight,
		})
		if err != nil {
			log.Fatalf("Failed to create gaze source: %v", err)
		}
	}

	// Focus history persistence is optional; without Redis the session
	// still runs, it just leaves nothing behind for reports
	var samplesRepo samples.Repository
	if redisAddr := getEnv("REDIS_ADDR", ""); redisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       0,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(ctx).Err(); err != nil {
			cancel()
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		cancel()

		samplesRepo, err = samples.NewRedis(&samples.Config{
			RedisClient: redisClient,
		})
		if err != nil {
			log.Fatalf("Failed to create samples repository: %v", err)
		}
	}

	controller, err := live.New(&live.Config{
		SessionID:  sessionID,
		Credential: token,
		UserID:     userID,
		UserName:   userName,
		Role:       role,
		Channel:    ch,
		API:        apiClient,
		Gaze:       gazeSource,
		Sampler:    sampler,
		Renderer:   render.NewConsole(),
		Notifier:   notifier,
		Samples:    samplesRepo,
		Redirect: func() {
			log.Println("Returning to dashboard")
		},
	})
	if err != nil {
		log.Fatalf("Failed to create session controller: %v", err)
	}

	// Leave cleanly on interrupt so the leave message goes out before the
	// connection closes
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	go func() {
		<-sc
		log.Println("Leaving session")
		controller.Leave()
		cancel()
	}()

	if err := controller.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Session ended with error: %v", err)
	}

	log.Println("Session has been shut down")
}

// logSink writes notifications to the process log
type logSink struct{}

func (s *logSink) Show(n notify.Notification) {
	log.Printf("[%s] %s", n.Level, n.Message)
}

func (s *logSink) Expire(id string) {}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvFloat gets a numeric environment variable or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		log.Fatalf("%s must be numeric: %v", key, err)
	}
	return f
}
