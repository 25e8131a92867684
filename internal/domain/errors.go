package domain

import "errors"

// Erros de regra de negócio compartilhados pelos serviços
var (
	ErrDadosIncompletos     = errors.New("dados incompletos")
	ErrNotaInvalida         = errors.New("nota deve ser um inteiro entre 1 e 5")
	ErrAcessoNegado         = errors.New("acesso negado")
	ErrCredenciaisInvalidas = errors.New("credenciais inválidas")
	ErrEmailEmUso           = errors.New("email já está em uso")
	ErrUsuarioInvalido      = errors.New("usuário do token não existe")
)
