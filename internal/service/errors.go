package service

import (
	"fmt"
)

type ErrAnalysisFailed struct {
	error
}

func NewErrAnalysisFailed(message string) *ErrAnalysisFailed {
	return &ErrAnalysisFailed{fmt.Errorf("resume analysis failed: %s", message)}
}

type ErrQuestionGenerationFailed struct {
	error
}

func NewErrQuestionGenerationFailed(message string) *ErrQuestionGenerationFailed {
	return &ErrQuestionGenerationFailed{fmt.Errorf("question generation failed: %s", message)}
}
