package kde

import (
	"errors"
	"fmt"
	"math"
)

// LikelihoodCrossValidate scores the current kernel/bandwidth configuration
// by leave-one-out log-likelihood: for each reference point, its
// dual-tree self-evaluation score with its own contribution subtracted out,
// weighted and log-summed. Higher is better. Grounded on
// KernelDensityImpl.h's likelihood_cross_validate.
func (k *KernelDensity) LikelihoodCrossValidate(relErr, absErr float64) (float64, error) {
	queryTree := k.selfEvalBatch(relErr, absErr)

	norm := k.cfg.Kernel.Normalization(k.cfg.Bandwidth)

	var cv float64
	for i, q := range queryTree.Points {
		selfMass := k.dataTree.Points[i].Attr.Mass * norm
		looVal := q.Estimate() - selfMass
		if looVal <= 0 {
			return 0, fmt.Errorf("kde: LikelihoodCrossValidate: non-positive leave-one-out density at point %d", i)
		}
		cv += k.dataTree.Points[i].Attr.Weight * math.Log(looVal)
	}
	return cv, nil
}

// LSQConvolutionCrossValidate scores the current kernel/bandwidth
// configuration by the least-squares cross-validation functional,
// computing its square-integral term via the kernel's self-convolution.
// Lower is better. Grounded on KernelDensityImpl.h's
// lsq_convolution_cross_validate.
func (k *KernelDensity) LSQConvolutionCrossValidate(relErr, absErr float64) (float64, error) {
	convKernel, ok := k.cfg.Kernel.(ConvolvableKernel)
	if !ok {
		return 0, errors.New("kde: LSQConvolutionCrossValidate: kernel does not support self-convolution")
	}
	conv, err := convKernel.ConvolutionKernel()
	if err != nil {
		return 0, fmt.Errorf("kde: LSQConvolutionCrossValidate: %w", err)
	}

	looTree := k.selfEvalBatch(relErr, absErr)

	norm := k.cfg.Kernel.Normalization(k.cfg.Bandwidth)
	var llo float64
	for i, q := range looTree.Points {
		selfMass := k.dataTree.Points[i].Attr.Mass * norm
		llo += k.dataTree.Points[i].Attr.Weight * (q.Estimate() - selfMass)
	}

	savedKernel := k.cfg.Kernel
	k.cfg.Kernel = conv
	sqTree := k.selfEvalBatch(relErr, absErr)
	k.cfg.Kernel = savedKernel

	var sqCV float64
	for i, q := range sqTree.Points {
		sqCV += k.dataTree.Points[i].Attr.Weight * q.Estimate()
	}

	return sqCV - 2*llo, nil
}

// LSQNumIntCrossValidate scores a 2-D kernel density by the least-squares
// cross-validation functional, approximating its square-integral term by
// numerical integration over an evenly spaced [startX,endX] x [startY,endY]
// grid instead of a closed-form convolution. qtreeLeafMax bounds the
// leaf size of the grid's query tree. Lower is better. Grounded on
// KernelDensityImpl.h's lsq_numint_cross_validate.
func (k *KernelDensity) LSQNumIntCrossValidate(startX, endX float64, stepsX int, startY, endY float64, stepsY int, relErr, absErr float64, qtreeLeafMax int) (float64, error) {
	if k.dataTree.Dim != 2 {
		return 0, fmt.Errorf("kde: LSQNumIntCrossValidate requires 2-dimensional data, got dimension %d", k.dataTree.Dim)
	}
	if stepsX <= 0 || stepsY <= 0 {
		return 0, fmt.Errorf("kde: LSQNumIntCrossValidate: steps must be > 0, got %d x %d", stepsX, stepsY)
	}

	looTree := k.selfEvalBatch(relErr, absErr)

	norm := k.cfg.Kernel.Normalization(k.cfg.Bandwidth)
	var llo float64
	for i, q := range looTree.Points {
		selfMass := k.dataTree.Points[i].Attr.Mass * norm
		llo += k.dataTree.Points[i].Attr.Weight * (q.Estimate() - selfMass)
	}

	deltaX := (endX - startX) / float64(stepsX)
	deltaY := (endY - startY) / float64(stepsY)

	grid := make([]DataPoint, 0, stepsX*stepsY)
	for j := 0; j < stepsY; j++ {
		for i := 0; i < stepsX; i++ {
			grid = append(grid, NewDataPoint(Point{startX + float64(i)*deltaX, startY + float64(j)*deltaY}))
		}
	}

	if err := k.EvalBatch(grid, relErr, absErr, qtreeLeafMax); err != nil {
		return 0, err
	}

	var selfCV float64
	for _, g := range grid {
		v := g.Estimate()
		selfCV += v * v * deltaX * deltaY
	}

	return selfCV - 2*llo, nil
}
