package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"career-compass/internal/llm"
)

// ShapeCheck valida el resultado ya parseado; devuelve error si no cumple el contrato del llamador.
type ShapeCheck func() error

// OracleClient hace exactamente un intento por llamada: prompt -> texto -> JSON -> shape check.
// No reintenta; los llamadores deciden que hacer con cada tipo de error.
type OracleClient struct {
	llm    llm.LLMClient
	logger *zap.Logger
	tracer trace.Tracer
}

func NewOracleClient(client llm.LLMClient, logger *zap.Logger) *OracleClient {
	return &OracleClient{
		llm:    client,
		logger: logger,
		tracer: otel.Tracer("career-compass/oracle"),
	}
}

// Invoke envia prompt, parsea la respuesta en out y corre check. stage solo se usa para logs y spans.
func (c *OracleClient) Invoke(ctx context.Context, stage, prompt string, check ShapeCheck, out any) error {
	ctx, span := c.tracer.Start(ctx, "oracle.invoke", trace.WithAttributes(
		attribute.String("oracle.stage", stage),
		attribute.Int("oracle.prompt_length", len(prompt)),
	))
	defer span.End()

	started := time.Now()
	err := c.invoke(ctx, prompt, check, out)
	elapsed := time.Since(started)

	if err != nil {
		kind := oracleErrorKind(err)
		span.SetAttributes(attribute.String("oracle.outcome", string(kind)))
		span.RecordError(err)
		span.SetStatus(codes.Error, string(kind))
		c.logger.Warn("oracle invocation failed",
			zap.String("stage", stage),
			zap.String("kind", string(kind)),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return err
	}

	span.SetAttributes(attribute.String("oracle.outcome", "ok"))
	c.logger.Info("oracle invocation succeeded",
		zap.String("stage", stage),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}

func (c *OracleClient) invoke(ctx context.Context, prompt string, check ShapeCheck, out any) error {
	raw, err := c.llm.Generate(ctx, prompt)
	if err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return newOracleError(OracleEmptyOutput, nil, "oracle returned no text")
		}
		return newOracleError(OracleTransport, err, "generate")
	}
	if strings.TrimSpace(cleanLLMJSONResponse(raw)) == "" {
		return newOracleError(OracleEmptyOutput, nil, "oracle returned no text")
	}

	if err := decodeLLMJSON(raw, out); err != nil {
		return newOracleError(OracleMalformedOutput, err, "decode json")
	}

	if check != nil {
		if err := check(); err != nil {
			if oracleErrorKind(err) == OracleSchema {
				return err
			}
			return newOracleError(OracleSchema, err, "shape check")
		}
	}
	return nil
}
