package grpcsvc

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vladislavdragonenkov/backoffice/internal/domain"
)

// codeFor переводит класс ошибки сервиса в gRPC-код.
func codeFor(err error) codes.Code {
	switch domain.KindOf(err) {
	case domain.KindNone:
		return codes.OK
	case domain.KindValidation:
		return codes.InvalidArgument
	case domain.KindNotFound:
		return codes.NotFound
	case domain.KindDuplicate:
		return codes.AlreadyExists
	case domain.KindUnavailable:
		return codes.Unavailable
	case domain.KindStorage:
		return codes.Internal
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded
	case errors.Is(err, context.Canceled):
		return codes.Canceled
	default:
		return codes.Unknown
	}
}

// toStatus сохраняет текст ошибки: сообщения валидатора и хранилища
// показываются оператору без изменений.
func (s *BackofficeService) toStatus(operation string, err error) error {
	if err == nil {
		return nil
	}
	code := codeFor(err)
	if code == codes.Internal || code == codes.Unknown {
		s.logger.WithError(err).WithFields(log.Fields{
			"operation": operation,
			"code":      code.String(),
		}).Error("request failed")
	}
	return status.Error(code, err.Error())
}
