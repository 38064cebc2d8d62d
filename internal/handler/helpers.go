package handler

import (
	"encoding/json"
	"net/http"
	"regexp"
	"strconv"
)

var (
	dateRegexp = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	timeRegexp = regexp.MustCompile(`^\d{2}:\d{2}$`)
)

func parseIDParam(r *http.Request) (int64, error) {
	idStr := r.PathValue("id")
	return strconv.ParseInt(idStr, 10, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
