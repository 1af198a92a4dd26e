package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/hashicorp/go-hclog"

	"github.com/raywall/secure-string-parameter/internal/client"
	"github.com/raywall/secure-string-parameter/internal/config"
	"github.com/raywall/secure-string-parameter/internal/models"
	"github.com/raywall/secure-string-parameter/internal/repository"
	"github.com/raywall/secure-string-parameter/internal/resource"
	"github.com/raywall/secure-string-parameter/internal/service"
	dto "github.com/raywall/secure-string-parameter/pkg/types"
)

// ErrUnknownRequestType é devolvido para RequestType fora de Create|Update|Delete.
var ErrUnknownRequestType = resource.ErrUnknownRequestType

// ConfigureFunc monta o ServiceBundle. Substituível em testes.
type ConfigureFunc func(ctx context.Context, cfg config.Config, logger hclog.Logger) (*models.ServiceBundle, error)

// Handler é o onEvent handler do Provider de custom resources.
// O bundle (clientes AWS incluídos) é criado na primeira invocação e reaproveitado
// nas invocações "quentes" do mesmo processo.
type Handler struct {
	cfg       config.Config
	logger    hclog.Logger
	configure ConfigureFunc

	once   sync.Once
	bundle *models.ServiceBundle
	err    error
}

// Option altera a construção do Handler.
type Option func(h *Handler)

// WithLogger define o logger raiz.
func WithLogger(logger hclog.Logger) Option {
	return func(h *Handler) {
		h.logger = logger
	}
}

// WithConfigure substitui a montagem padrão do bundle.
func WithConfigure(fn ConfigureFunc) Option {
	return func(h *Handler) {
		h.configure = fn
	}
}

// New cria o Handler.
func New(cfg config.Config, options ...Option) *Handler {
	h := &Handler{
		cfg:       cfg,
		logger:    hclog.NewNullLogger(),
		configure: Configure,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

// Handle processa um evento do ciclo de vida do custom resource.
func (h *Handler) Handle(ctx context.Context, event cfn.Event) (*dto.Response, error) {
	log := h.logger.With("request_type", string(event.RequestType), "logical_id", event.LogicalResourceID)
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.With("aws_request_id", lc.AwsRequestID)
	}

	if log.IsDebug() {
		props, err := resource.DecodeProperties(event.ResourceProperties)
		if err == nil {
			log.Debug("received event", "physical_id", event.PhysicalResourceID, "properties", fmt.Sprintf("%+v", props.Redacted()))
		}
	}

	bundle, err := h.getBundle(ctx)
	if err != nil {
		log.Error("configuration failed", "error", err)
		return nil, err
	}

	resp, err := resource.Dispatch(ctx, bundle, event, log)
	if err != nil {
		log.Error("request failed", "error", err)
		return nil, err
	}
	log.Info("request succeeded", "physical_id", resp.PhysicalResourceID)
	return resp, nil
}

func (h *Handler) getBundle(ctx context.Context) (*models.ServiceBundle, error) {
	h.once.Do(func() {
		h.bundle, h.err = h.configure(ctx, h.cfg, h.logger)
	})
	return h.bundle, h.err
}

// Configure inicializa clientes, repositórios e services.
func Configure(ctx context.Context, cfg config.Config, logger hclog.Logger) (*models.ServiceBundle, error) {
	// 1. Inicializa o AWS Client (Base)
	awsClient, err := client.New(ctx, cfg.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws client: %w", err)
	}

	// 2. Inicializa os Repositórios
	ssmRepo := &repository.SSMRepository{Client: awsClient.SSM}
	kmsRepo := &repository.KMSRepository{Client: awsClient.KMS}

	// 3. Inicializa os Services
	valueService := &service.ValueService{KMSRepo: kmsRepo, Logger: logger.Named("value")}
	tagService := &service.TagService{SSMRepo: ssmRepo, Logger: logger.Named("tags")}

	// 4. Service Orquestrador
	parameterService := &service.SecureStringService{
		ValueService: valueService,
		TagService:   tagService,
		SSMRepo:      ssmRepo,
		Logger:       logger.Named("parameter"),
	}

	return &models.ServiceBundle{ParameterService: parameterService}, nil
}
