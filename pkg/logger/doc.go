// Package logger builds the slog loggers used by the validation engine and
// its command line tool.
//
// New creates a *slog.Logger from functional options: format (JSON or text),
// level, output, static attributes and context extractors. The handler is
// wrapped with LogHandlerDecorator, which adds attributes taken from the
// context of each record. The run identifier stored with WithRunID is always
// extracted, so every record of a validation run carries run_id.
//
//	log := logger.New(logger.WithEnvironment(cfg.Env, "entityvalidate"))
//	ctx := logger.WithRunID(ctx, runID)
//	log.InfoContext(ctx, "validation finished", logger.EntityType("node"), logger.ErrorCount(2))
//
// Attribute helpers (EntityType, Variant, Field, Phase, Validator, ErrorCount,
// Duration, Component, Error) keep key names consistent. Error and Errors
// return an empty Attr for nil errors, which slog drops.
package logger
