package constants

// Order status values as stored in orders.status.
const (
	ORDER_PENDENTE          = "PENDENTE"
	ORDER_EM_PREPARO        = "EM_PREPARO"
	ORDER_PRONTO            = "PRONTO"
	ORDER_SAIU_PARA_ENTREGA = "SAIU_PARA_ENTREGA"
	ORDER_ENTREGUE          = "ENTREGUE"
	ORDER_FINALIZADO        = "FINALIZADO"
	ORDER_CANCELADO         = "CANCELADO"
)

var ORDER_STATUSES = []string{
	ORDER_PENDENTE,
	ORDER_EM_PREPARO,
	ORDER_PRONTO,
	ORDER_SAIU_PARA_ENTREGA,
	ORDER_ENTREGUE,
	ORDER_FINALIZADO,
	ORDER_CANCELADO,
}

// Service channel (tipo_pedido).
const (
	TIPO_BALCAO   = "BALCAO"
	TIPO_RETIRADA = "RETIRADA"
	TIPO_ENTREGA  = "ENTREGA"
	TIPO_COMANDA  = "COMANDA"
)

const (
	PAYMENT_PENDENTE = "PENDENTE"
	PAYMENT_PAGO     = "PAGO"
)

const (
	COMANDA_ABERTA  = "ABERTA"
	COMANDA_FECHADA = "FECHADA"
)

const (
	PRODUCT_UNIDADE = "UNIDADE"
	PRODUCT_COMBO   = "COMBO"
)

const (
	ROLE_ADMIN     = "ADMIN"
	ROLE_ATENDENTE = "ATENDENTE"
)

// Phones without a country code are read in this region.
const DEFAULT_PHONE_REGION = "BR"

// Messages returned to API clients.
const (
	ERROR_INTERNAL_ERROR       = "Erro interno do servidor"
	ERROR_INPUT                = "Dados de entrada inválidos"
	ERROR_PARSE_DATA_TO_LOCALS = "Falha ao ler dados da requisição"
	ERROR_ID_INVALID           = "ID inválido"
	MISSING_LOGIN_INPUT        = "Usuário e senha são obrigatórios"
	INVALID_CREDENTIALS        = "Usuário ou senha inválidos"
	MISSING_TOKEN              = "Token ausente"
	INVALID_TOKEN              = "Token inválido"
	ORIGIN_NOT_ALLOWED         = "Origem não permitida"
	DELIVERY_FEE_MANUAL        = "Não foi possível calcular o frete automaticamente, informe manualmente"
	FILE_REQUIRED              = "Arquivo obrigatório"
	STORAGE_NOT_CONFIGURED     = "Armazenamento de arquivos não configurado"
	REALTIME_NOT_CONFIGURED    = "Painel em tempo real não configurado"
)

// Activity log actions.
const (
	ACTION_CREATE        = "CREATE"
	ACTION_UPDATE        = "UPDATE"
	ACTION_DELETE        = "DELETE"
	ACTION_STATUS_CHANGE = "STATUS_CHANGE"
	ACTION_CANCEL        = "CANCEL"
	ACTION_CLOSE         = "CLOSE"
)

const (
	QZ_NOT_CONFIGURED = "Assinatura de impressão não configurada"
	WHATSAPP_SKIPPED  = "WhatsApp não configurado, envio ignorado"
)
