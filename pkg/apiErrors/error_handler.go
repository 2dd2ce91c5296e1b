package apiErrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Kind agrupa os códigos pela natureza do erro
type Kind string

const (
	KindNotFound     Kind = "NotFound"
	KindValidation   Kind = "Validation"
	KindConflict     Kind = "Conflict"
	KindUnauthorized Kind = "Unauthorized"
	KindInternal     Kind = "Internal"
)

// Códigos de erro
const (
	// Erros de autenticação
	ErrInvalidCredentials    = "AUTH_001" // Credenciais inválidas
	ErrUserNotFound          = "AUTH_003" // Usuário não encontrado
	ErrInvalidToken          = "AUTH_006" // Token inválido
	ErrExpiredToken          = "AUTH_007" // Token expirado
	ErrInsufficientPrivilege = "AUTH_008" // Privilégios insuficientes
	ErrUserAlreadyExists     = "AUTH_009" // Usuário já existe

	// Erros de validação
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido
	ErrRouteNotFound       = "VAL_004" // Rota inexistente
	ErrMethodNotAllowed    = "VAL_005" // Método não suportado pela rota

	// Erros de catálogo
	ErrProductNotFound = "CAT_001" // Produto não encontrado para o dono
	ErrClientNotFound  = "CAT_002" // Cliente não encontrado para o dono
	ErrClientInUse     = "CAT_003" // Cliente com pedidos vinculados

	// Erros de pedidos
	ErrOrderNotFound   = "ORD_001" // Pedido não encontrado
	ErrEmptyOrder      = "ORD_002" // Pedido sem itens
	ErrInvalidQuantity = "ORD_003" // Quantidade menor que 1
	ErrInvalidStatus   = "ORD_004" // Status fora do enum

	// Erros de faturamento
	ErrLedgerRecordMissing = "REV_001" // Linha de faturamento inexistente na reversão
	ErrInvalidYear         = "REV_002" // Ano inválido na consulta

	// Erros do servidor
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrConcurrency       = "SRV_005" // Conflito de concorrência após reexecução
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:    http.StatusUnauthorized,
	ErrUserNotFound:          http.StatusNotFound,
	ErrInvalidToken:          http.StatusUnauthorized,
	ErrExpiredToken:          http.StatusUnauthorized,
	ErrInsufficientPrivilege: http.StatusForbidden,
	ErrUserAlreadyExists:     http.StatusBadRequest,
	ErrInvalidRequest:        http.StatusBadRequest,
	ErrMissingRequiredData:   http.StatusBadRequest,
	ErrInvalidFormat:         http.StatusBadRequest,
	ErrRouteNotFound:         http.StatusNotFound,
	ErrMethodNotAllowed:      http.StatusMethodNotAllowed,
	ErrProductNotFound:       http.StatusNotFound,
	ErrClientNotFound:        http.StatusNotFound,
	ErrClientInUse:           http.StatusConflict,
	ErrOrderNotFound:         http.StatusNotFound,
	ErrEmptyOrder:            http.StatusBadRequest,
	ErrInvalidQuantity:       http.StatusBadRequest,
	ErrInvalidStatus:         http.StatusBadRequest,
	ErrLedgerRecordMissing:   http.StatusNotFound,
	ErrInvalidYear:           http.StatusBadRequest,
	ErrInternalServer:        http.StatusInternalServerError,
	ErrDatabaseOperation:     http.StatusInternalServerError,
	ErrConcurrency:           http.StatusInternalServerError,
}

var kindMap = map[string]Kind{
	ErrInvalidCredentials:    KindUnauthorized,
	ErrUserNotFound:          KindNotFound,
	ErrInvalidToken:          KindUnauthorized,
	ErrExpiredToken:          KindUnauthorized,
	ErrInsufficientPrivilege: KindUnauthorized,
	ErrUserAlreadyExists:     KindValidation,
	ErrInvalidRequest:        KindValidation,
	ErrMissingRequiredData:   KindValidation,
	ErrInvalidFormat:         KindValidation,
	ErrRouteNotFound:         KindNotFound,
	ErrMethodNotAllowed:      KindValidation,
	ErrProductNotFound:       KindNotFound,
	ErrClientNotFound:        KindNotFound,
	ErrClientInUse:           KindConflict,
	ErrOrderNotFound:         KindNotFound,
	ErrEmptyOrder:            KindValidation,
	ErrInvalidQuantity:       KindValidation,
	ErrInvalidStatus:         KindValidation,
	ErrLedgerRecordMissing:   KindNotFound,
	ErrInvalidYear:           KindValidation,
	ErrConcurrency:           KindInternal,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Kind    Kind   `json:"error_kind"`        // Natureza do erro
	Message string `json:"message,omitempty"` // Mensagem descritiva (opcional)
	Details any    `json:"details,omitempty"` // Detalhes adicionais (opcional)
}

// StatusOf retorna o status HTTP do código; códigos desconhecidos viram 500
func StatusOf(code string) int {
	status, exists := httpStatusMap[code]
	if !exists {
		return http.StatusInternalServerError
	}
	return status
}

// KindOf retorna a natureza do código; códigos desconhecidos são Internal
func KindOf(code string) Kind {
	kind, exists := kindMap[code]
	if !exists {
		return KindInternal
	}
	return kind
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details any) {
	apiErr := APIError{
		Code:    code,
		Kind:    KindOf(code),
		Message: message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusOf(code))
	_ = json.NewEncoder(w).Encode(apiErr)
}

// FromError cria um erro de API a partir de um erro Go
func FromError(err error, code string) APIError {
	if err == nil {
		return APIError{
			Code:    ErrInternalServer,
			Kind:    KindInternal,
			Message: "Erro desconhecido",
		}
	}

	return APIError{
		Code:    code,
		Kind:    KindOf(code),
		Message: err.Error(),
	}
}
