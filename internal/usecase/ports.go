package usecase

import "github.com/hsm-textlab/workbench/internal/plot"

// Notifier показывает пользователю сообщение.
type Notifier interface {
	Alert(message string)
}

// Confirmer задает пользователю вопрос да/нет.
type Confirmer interface {
	Confirm(message string) bool
}

// Prompter запрашивает у пользователя строку.
type Prompter = plot.Prompter

// ConfirmNotifier нужен действиям, которые спрашивают подтверждение и сообщают результат.
type ConfirmNotifier interface {
	Notifier
	Confirmer
}

// Dialog объединяет все способы общения с пользователем.
type Dialog interface {
	Notifier
	Confirmer
	Prompter
}
