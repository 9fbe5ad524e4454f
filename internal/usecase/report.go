package usecase

import (
	"errors"

	"github.com/hsm-textlab/workbench/internal/domain"
	"github.com/hsm-textlab/workbench/pkg/logger"
)

// Сообщения, которые видит пользователь после успешных действий.
const (
	MsgSaved   = "Saved!"
	MsgRemoved = "Removed!"
	MsgUpdated = "Updated!"
	MsgCleared = "Cleared!"

	MsgConfirmClear = "Do you really want to clear ALL labels?"
)

// report показывает ошибку пользователю и возвращает ее без изменений.
// Ошибка бэкенда (FAIL) показывается его строкой как есть, остальные логируются и показываются целиком.
func report(n Notifier, log logger.Logger, err error) error {
	var fail *domain.FailError
	if errors.As(err, &fail) {
		log.Debugf("%v", err)
		n.Alert(fail.Message)
		return err
	}

	log.Errorf(err, "request failed")
	n.Alert(err.Error())
	return err
}
