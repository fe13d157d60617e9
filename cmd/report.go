package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"quadrature"
	"quadrature/config"
	"quadrature/functions"
	"quadrature/types"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// row 一次积分的输出行
type row struct {
	integrand string
	dim       int
	method    types.Method
	param     float64
	estimate  types.Estimate
	reference float64
	exact     bool // 是否有解析参考值
	elapsed   time.Duration
}

// execute 依次计算配置中的全部运行并输出表格，耗时取 repeats 次平均
func execute(cmd *cobra.Command, cfg *config.Config, repeats int) error {
	logger := cfg.Logger(cmd.ErrOrStderr())
	settings, err := cfg.Settings(logger)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "函数\t维数\t方法\t参数\t估计值\t参考值\t相对误差\t调用次数\t迭代\t收敛\t耗时")
	for _, run := range cfg.Runs {
		rows, err := repeatRun(run, settings, logger, repeats)
		if err != nil {
			return err
		}
		for _, r := range rows {
			r.write(w)
		}
	}
	return w.Flush()
}

// repeatRun 重复执行 repeats 次，保留首次结果，耗时取平均
func repeatRun(run config.RunConfig, settings quadrature.Settings, logger *slog.Logger, repeats int) ([]row, error) {
	rows, err := evaluateRun(run, settings, logger)
	if err != nil {
		return nil, err
	}
	for range repeats - 1 {
		again, err := evaluateRun(run, settings, logger)
		if err != nil {
			return nil, err
		}
		for i := range rows {
			rows[i].elapsed += again[i].elapsed
		}
	}
	for i := range rows {
		rows[i].elapsed /= time.Duration(repeats)
	}
	return rows, nil
}

// evaluateRun 对单个被积函数依次执行配置的方法
// 未收敛的自适应结果照常输出，其余错误中止
func evaluateRun(run config.RunConfig, settings quadrature.Settings, logger *slog.Logger) ([]row, error) {
	fn, err := functions.Get(run.Integrand)
	if err != nil {
		return nil, err
	}
	bounds, err := run.AxisBounds()
	if err != nil {
		return nil, err
	}
	if err := fn.Check(bounds); err != nil {
		return nil, err
	}
	integral, err := quadrature.NewND(fn.Integrand, bounds)
	if err != nil {
		return nil, err
	}
	reference, exact := fn.Reference(bounds)

	rows := make([]row, 0, len(run.Methods))
	for _, mc := range run.Methods {
		method, err := types.ParseMethod(mc.Method)
		if err != nil {
			return nil, err
		}
		start := time.Now()
		est, err := integral.Evaluate(method, mc.Param, settings)
		elapsed := time.Since(start)
		if err != nil {
			if !errors.Is(err, types.ErrConvergenceNotGuaranteed) {
				return nil, fmt.Errorf("%s/%s: %w", run.Integrand, method, err)
			}
			logger.Warn("未达到目标误差", "func", run.Integrand, "method", method.String(), "error", err)
		}
		logger.Debug("积分完成", "func", run.Integrand, "method", method.String(),
			"estimate", est.Value, "evaluations", est.Evaluations, "elapsed", elapsed)
		rows = append(rows, row{
			integrand: run.Integrand,
			dim:       bounds.Dim(),
			method:    method,
			param:     mc.Param,
			estimate:  est,
			reference: reference,
			exact:     exact,
			elapsed:   elapsed,
		})
	}
	return rows, nil
}

// write 输出一行
func (r row) write(w io.Writer) {
	reference, relErr := "-", "-"
	if r.exact {
		reference = fmt.Sprintf("%.12g", r.reference)
		relErr = fmt.Sprintf("%.3e", relativeError(r.estimate.Value, r.reference))
	}
	iterations := "-"
	if r.method.IsAdaptive() {
		iterations = fmt.Sprint(r.estimate.Iterations)
	}
	converged := "是"
	if !r.estimate.Converged {
		converged = "否"
	}
	fmt.Fprintf(w, "%s\t%d\t%s\t%g\t%.12g\t%s\t%s\t%d\t%s\t%s\t%s\n",
		r.integrand, r.dim, r.method, r.param, r.estimate.Value, reference, relErr,
		r.estimate.Evaluations, iterations, converged, r.elapsed.Round(time.Microsecond))
}

// relativeError 相对误差，参考值为零时为绝对误差
func relativeError(value, reference float64) float64 {
	if reference == 0 {
		return math.Abs(value)
	}
	return math.Abs(value-reference) / math.Abs(reference)
}
