package handlers

import (
	"net/http"
	"strconv"
	"strings"
)

// QueryString возвращает параметр запроса без пробелов по краям
func QueryString(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

// QueryInt парсит необязательный целочисленный параметр. Отсутствие - 0.
func QueryInt(r *http.Request, name string) (int, error) {
	raw := QueryString(r, name)
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

// QueryBool парсит необязательный булев параметр. Отсутствие - false.
func QueryBool(r *http.Request, name string) (bool, error) {
	raw := QueryString(r, name)
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}
