/*
Package eduml is a small library of supervised learning
algorithms implemented from scratch for teaching purposes: a
binary decision tree built by greedy recursive partitioning
(package tree), multinomial logistic regression trained by
gradient descent (package linear) and linear support-vector
classifiers trained on the dual problem (package svm).

Every model family implements the Model interface and learns
from the plain numeric datasets of package dataset, which can
be loaded from CSV, SQLite3, PostgreSQL, MongoDB or redis
backends.
*/
package eduml

import "context"

/*
Model is a supervised learning model.

Its Fit method trains the model on a feature matrix and a
target vector of equal length, fully discarding the outcome of
any previous training. Its Predict method returns one
prediction per query row, in input order; calling it before a
successful Fit is an error. Its PredictProba method returns
per-class probability estimates for model families that define
them and an empty result for those that do not.
*/
type Model interface {
	Fit(ctx context.Context, X [][]float64, y []float64) error
	Predict(ctx context.Context, X [][]float64) ([]float64, error)
	PredictProba(ctx context.Context, X [][]float64) ([][]float64, error)
}
