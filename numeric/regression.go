package numeric

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogisticRegression runs iterations steps of gradient descent on w for labels Y in
// {-1, +1} and samples X (one row per sample). w is updated in place and returned.
//
//	w -= rate * Xᵀ((σ(Y ⊙ Xw) - 1) ⊙ Y)
func LogisticRegression(Y *mat.VecDense, X *mat.Dense, w *mat.VecDense, iterations int, rate float64) *mat.VecDense {
	n, d := X.Dims()
	if Y.Len() != n || w.Len() != d {
		panic(mat.ErrShape)
	}

	z := mat.NewVecDense(n, nil)
	grad := mat.NewVecDense(d, nil)
	for it := 0; it < iterations; it++ {
		z.MulVec(X, w)
		for i := 0; i < n; i++ {
			y := Y.AtVec(i)
			z.SetVec(i, (sigmoid(y*z.AtVec(i))-1.0)*y)
		}
		grad.MulVec(X.T(), z)
		w.AddScaledVec(w, -rate, grad)
	}
	return w
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// Predict labels each row of X with the sign of its score, +1 on ties.
func Predict(X *mat.Dense, w *mat.VecDense) *mat.VecDense {
	n, _ := X.Dims()
	scores := mat.NewVecDense(n, nil)
	scores.MulVec(X, w)
	for i := 0; i < n; i++ {
		if scores.AtVec(i) >= 0 {
			scores.SetVec(i, 1)
		} else {
			scores.SetVec(i, -1)
		}
	}
	return scores
}

// Accuracy is the fraction of positions where want and got agree.
func Accuracy(want, got *mat.VecDense) float64 {
	n := want.Len()
	if n == 0 || got.Len() != n {
		return 0
	}
	hits := 0
	for i := 0; i < n; i++ {
		if want.AtVec(i) == got.AtVec(i) {
			hits++
		}
	}
	return float64(hits) / float64(n)
}

// Blobs draws n samples from two gaussian clusters centred on (-2, -2) and (2, 2).
// Rows are [1, x, y] so the first weight acts as a bias. Labels are -1 and +1.
func Blobs(n int, seed uint64) (*mat.Dense, *mat.VecDense) {
	r := newRand(seed, 0)
	X := mat.NewDense(n, 3, nil)
	Y := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		label, centre := -1.0, -2.0
		if i%2 == 1 {
			label, centre = 1.0, 2.0
		}
		X.SetRow(i, []float64{1, centre + r.NormFloat64(), centre + r.NormFloat64()})
		Y.SetVec(i, label)
	}
	return X, Y
}

// Split cuts the first ratio of the rows into a training set and the rest into a
// test set.
func Split(X *mat.Dense, Y *mat.VecDense, ratio float64) (trainX *mat.Dense, trainY *mat.VecDense, testX *mat.Dense, testY *mat.VecDense) {
	n, d := X.Dims()
	cut := int(float64(n) * ratio)
	if cut <= 0 || cut >= n {
		panic("numeric: split ratio leaves an empty set")
	}
	trainX = mat.DenseCopyOf(X.Slice(0, cut, 0, d))
	testX = mat.DenseCopyOf(X.Slice(cut, n, 0, d))
	trainY = mat.VecDenseCopyOf(Y.SliceVec(0, cut))
	testY = mat.VecDenseCopyOf(Y.SliceVec(cut, n))
	return trainX, trainY, testX, testY
}
