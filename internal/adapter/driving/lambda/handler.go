package lambda

import (
	"context"
	"encoding/json"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/diillson/aws-idle-audit-go/internal/domain/entity"
	"github.com/diillson/aws-idle-audit-go/internal/shared/logger"
)

// Invoker runs one audit for an incoming event.
type Invoker interface {
	Invoke(ctx context.Context, event json.RawMessage) (entity.InvocationResult, error)
}

// Handler adapts the audit use case to the Lambda runtime.
type Handler struct {
	invoker Invoker
	log     *logger.Logger
}

// NewHandler creates a Lambda handler.
func NewHandler(invoker Invoker, log *logger.Logger) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{invoker: invoker, log: log}
}

// Handle processes one invocation. The event payload is opaque; a returned
// error fails the invocation so the runtime can retry it.
func (h *Handler) Handle(ctx context.Context, event json.RawMessage) (entity.InvocationResult, error) {
	log := h.log
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		log = log.With("request_id", lc.AwsRequestID)
	}

	result, err := h.invoker.Invoke(ctx, event)
	if err != nil {
		log.ErrorWithErr(err, "invocation failed")
		return entity.InvocationResult{}, err
	}
	log.Infof("invocation finished with status %d", result.StatusCode)
	return result, nil
}

// Start hands control to the Lambda runtime. It never returns.
func (h *Handler) Start() {
	awslambda.Start(h.Handle)
}
