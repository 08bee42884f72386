package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/GoArmGo/ExerciseTracker/internal/domain"
	"github.com/GoArmGo/ExerciseTracker/internal/usecase"
	"github.com/go-chi/chi/v5"
)

// Сообщения об ошибках отдаются клиенту JSON-строкой со статусом 200
const (
	msgUsernameTaken    = "Error: That username is taken. Try a different one."
	msgUsernameRequired = "Error: Username is required."
	msgCreateUser       = "Error: There was an error creating the user"
	msgListUsers        = "Error: There was an error reading users"
	msgMissingFields    = "Error: You have not entered any information."
	msgInvalidDuration  = "Error: Invalid duration"
	msgInvalidDate      = "Error: Invalid date"
	msgInvalidUser      = "Error: Invalid User ID"
	msgSaveExercise     = "Error: There was an error saving your exercise"
	msgReadLog          = "Error: There was an error reading the log"
)

var errorMessages = []struct {
	err error
	msg string
}{
	{usecase.ErrUsernameTaken, msgUsernameTaken},
	{usecase.ErrUsernameRequired, msgUsernameRequired},
	{usecase.ErrMissingFields, msgMissingFields},
	{usecase.ErrInvalidDuration, msgInvalidDuration},
	{usecase.ErrInvalidDate, msgInvalidDate},
	{usecase.ErrInvalidUser, msgInvalidUser},
	{usecase.ErrSaveExercise, msgSaveExercise},
}

// errorMessage сопоставляет ошибку usecase'а с сообщением для клиента
func errorMessage(err error, fallback string) string {
	for _, m := range errorMessages {
		if errors.Is(err, m.err) {
			return m.msg
		}
	}
	return fallback
}

// ExerciseHandler — обработчик HTTP-запросов трекера упражнений.
type ExerciseHandler struct {
	useCase usecase.ExerciseUseCase
	logger  *slog.Logger
}

// NewExerciseHandler создаёт новый экземпляр ExerciseHandler.
func NewExerciseHandler(uc usecase.ExerciseUseCase, logger *slog.Logger) *ExerciseHandler {
	return &ExerciseHandler{useCase: uc, logger: logger}
}

// Routes возвращает роутер с эндпоинтами API; монтируется под префиксом (по умолчанию /api/exercise)
func (h *ExerciseHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/new-user", h.CreateUser)
	r.Get("/users", h.ListUsers)
	r.Post("/add", h.AddExercise)
	r.Get("/log", h.GetLog)
	return r
}

type addExerciseResponse struct {
	ID          string  `json:"_id"`
	Username    string  `json:"username"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

type logResponse struct {
	ID       string            `json:"_id"`
	Username string            `json:"username"`
	Count    int               `json:"count"`
	Log      []domain.LogEntry `json:"log"`
}

// respondWithJSON — отправляет JSON-ответ клиенту.
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}, logger *slog.Logger) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		logger.Error("failed to marshal JSON response", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if _, err = w.Write(response); err != nil {
		logger.Error("failed to write HTTP response", "error", err)
	}
}

// respondWithError — отправляет сообщение об ошибке JSON-строкой.
// Статус всегда 200: клиенты API различают ошибки по префиксу "Error: "
func respondWithError(w http.ResponseWriter, message string, logger *slog.Logger) {
	respondWithJSON(w, http.StatusOK, message, logger)
}

// readForm разбирает тело запроса: urlencoded, multipart или JSON-объект
func readForm(r *http.Request) (url.Values, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))

	switch mediaType {
	case "application/json":
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return url.Values{}, fmt.Errorf("decode json body: %w", err)
		}
		values := url.Values{}
		for k, v := range body {
			switch t := v.(type) {
			case nil:
			case string:
				values.Set(k, t)
			case float64:
				values.Set(k, strconv.FormatFloat(t, 'f', -1, 64))
			default:
				values.Set(k, fmt.Sprint(t))
			}
		}
		return values, nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return url.Values{}, fmt.Errorf("parse multipart form: %w", err)
		}
		return r.Form, nil
	default:
		if err := r.ParseForm(); err != nil {
			return url.Values{}, fmt.Errorf("parse form: %w", err)
		}
		return r.Form, nil
	}
}

// CreateUser — POST /new-user, создаёт пользователя по полю username.
func (h *ExerciseHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		h.logger.Warn("failed to read request body", "endpoint", "CreateUser", "error", err)
	}

	user, err := h.useCase.CreateUser(r.Context(), form.Get("username"))
	if err != nil {
		h.logger.Warn("failed to create user", "username", form.Get("username"), "error", err)
		respondWithError(w, errorMessage(err, msgCreateUser), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, user, h.logger)
}

// ListUsers — GET /users, возвращает массив {username, _id}.
func (h *ExerciseHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.useCase.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("failed to list users", "error", err)
		respondWithError(w, msgListUsers, h.logger)
		return
	}

	h.logger.Debug("users listed", "count", len(users))
	respondWithJSON(w, http.StatusOK, users, h.logger)
}

// AddExercise — POST /add, добавляет упражнение пользователю.
func (h *ExerciseHandler) AddExercise(w http.ResponseWriter, r *http.Request) {
	form, err := readForm(r)
	if err != nil {
		h.logger.Warn("failed to read request body", "endpoint", "AddExercise", "error", err)
	}

	added, err := h.useCase.AddExercise(r.Context(), usecase.AddExerciseInput{
		UserID:      form.Get("userId"),
		Description: form.Get("description"),
		Duration:    form.Get("duration"),
		Date:        form.Get("date"),
	})
	if err != nil {
		h.logger.Warn("failed to add exercise", "user_id", form.Get("userId"), "error", err)
		respondWithError(w, errorMessage(err, msgSaveExercise), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, addExerciseResponse{
		ID:          added.User.ID,
		Username:    added.User.Username,
		Description: added.Exercise.Description,
		Duration:    added.Exercise.Duration,
		Date:        domain.FormatDate(added.Exercise.Date),
	}, h.logger)
}

// GetLog — GET /log?userId=&from=&to=&limit=, возвращает журнал пользователя.
func (h *ExerciseHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	exerciseLog, err := h.useCase.GetLog(r.Context(), usecase.LogQuery{
		UserID: query.Get("userId"),
		From:   query.Get("from"),
		To:     query.Get("to"),
		Limit:  query.Get("limit"),
	})
	if err != nil {
		h.logger.Warn("failed to get exercise log", "user_id", query.Get("userId"), "error", err)
		respondWithError(w, errorMessage(err, msgReadLog), h.logger)
		return
	}

	respondWithJSON(w, http.StatusOK, logResponse{
		ID:       exerciseLog.User.ID,
		Username: exerciseLog.User.Username,
		Count:    exerciseLog.Count,
		Log:      exerciseLog.Entries,
	}, h.logger)
}
