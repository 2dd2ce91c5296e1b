package handler

import (
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"
	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/stockly-api/pkg/apiErrors"
	"github.com/vfg2006/stockly-api/pkg/log"
	"github.com/vfg2006/stockly-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Nomes dos campos nos erros seguem a tag json
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidationDetail descreve um campo rejeitado na validação
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// decodeAndValidate lê o corpo JSON em dst e aplica as regras de validação.
// A resposta de erro já é escrita quando retorna false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição vazio", nil)
			return false
		}
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
		return false
	}

	if err := validate.Struct(dst); err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Dados da requisição inválidos", validationDetails(err))
		return false
	}

	return true
}

func validationDetails(err error) []ValidationDetail {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return nil
	}

	details := make([]ValidationDetail, 0, len(validationErrors))
	for _, e := range validationErrors {
		details = append(details, ValidationDetail{
			Field:   strings.TrimPrefix(e.Namespace(), namespaceRoot(e)),
			Message: validationMessage(e),
		})
	}
	return details
}

// namespaceRoot remove o nome da struct raiz, ex. "CreateOrderRequest.items[0].product_id"
func namespaceRoot(e validator.FieldError) string {
	ns := e.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[:idx+1]
	}
	return ""
}

func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "campo obrigatório"
	case "email":
		return "email inválido"
	case "max":
		return "deve ter no máximo " + e.Param()
	case "min":
		return "deve ter no mínimo " + e.Param()
	case "gt":
		return "deve ser maior que " + e.Param()
	case "gte":
		return "deve ser maior ou igual a " + e.Param()
	default:
		return "valor inválido"
	}
}

// ownerID retorna o dono autenticado; a resposta de erro já é escrita quando ok é false
func ownerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.UserID <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
		return 0, false
	}
	return claims.UserID, true
}

// pathID lê um identificador numérico positivo da rota
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := httprouter.ParamsFromContext(r.Context()).ByName(name)
	if raw == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID não fornecido", nil)
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "ID inválido", map[string]any{name: raw})
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar resposta")
	}
}
