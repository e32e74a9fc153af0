package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz content could not be loaded.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrIncomeOutOfRange is returned when a budget game is started with an income outside $1,000-$10,000.
	ErrIncomeOutOfRange = errors.New("monthly income must be between 1000 and 10000")
	// ErrInsufficientFunds is returned when a choice would drive the balance below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrGameOver is returned when a terminal session is asked to mutate further.
	ErrGameOver = errors.New("game is over")
	// ErrGameNotActive is returned when a move arrives outside the active phase.
	ErrGameNotActive = errors.New("game is not active")
	// ErrTimeExpired indicates the countdown hit zero; submissions after that are ignored.
	ErrTimeExpired = errors.New("time expired")
	// ErrUnauthenticated is returned when an identity is required but none resolved.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrUnknownSymbol indicates a trade against a ticker the simulator does not list.
	ErrUnknownSymbol = errors.New("unknown stock symbol")
	// ErrInsufficientShares is returned when selling more shares than held.
	ErrInsufficientShares = errors.New("insufficient shares")
	// ErrInvalidShares is returned for zero or negative share counts.
	ErrInvalidShares = errors.New("share count must be positive")
	// ErrEmptyArticle is returned when a bias analysis has neither URL nor text.
	ErrEmptyArticle = errors.New("article url or text required")
)
