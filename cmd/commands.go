package main

import (
	"fmt"
	"math"
	"quadrature/config"
	"quadrature/functions"
	"quadrature/types"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// defaultTolerance 自适应方法默认目标相对误差
const defaultTolerance = 1e-6

// defaultSubdivisions 复合方法默认细分数
const defaultSubdivisions = 64

// newRootCmd 根命令
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "quadrature",
		Short: "数值积分：复合中点、辛普森、蒙特卡洛及其自适应版本",
		Long: `quadrature 对内置测试函数在矩形区域上求定积分，
并输出估计值、解析参考值、相对误差、被积函数调用次数与耗时。`,
		SilenceUsage: true,
	}
	root.AddCommand(newListCmd(), newEvalCmd(), newRunCmd(), newSweepCmd())
	return root
}

// newListCmd 列出内置函数与方法
func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "列出内置被积函数与积分方法",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "函数\t维数\t表达式")
			for _, fn := range functions.List() {
				dim := "任意"
				if fn.Dim != 0 {
					dim = strconv.Itoa(fn.Dim)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", fn.Name, dim, fn.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			names := make([]string, 0, len(types.Methods()))
			for _, m := range types.Methods() {
				names = append(names, m.String())
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "\n方法: %s\n", strings.Join(names, ", "))
			return err
		},
	}
}

// newEvalCmd 通过命令行参数计算单个积分
func newEvalCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	var (
		integrand string
		axes      []string
		methods   []string
		dim       int
		seed      uint64
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "计算单个被积函数的积分",
		Example: `  quadrature eval -f sin -a 0:pi -m simpson=16 -m adaptive-simpson=1e-10
  quadrature eval -f square-sum -a 0:1 --dim 3 -m monte-carlo=100000 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bounds, err := buildBounds(axes, dim)
			if err != nil {
				return err
			}
			run := config.RunConfig{Integrand: integrand, Bounds: bounds}
			for _, arg := range methods {
				mc, err := parseMethod(arg)
				if err != nil {
					return err
				}
				run.Methods = append(run.Methods, mc)
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = &seed
			}
			cfg.Runs = []config.RunConfig{run}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return execute(cmd, &cfg, 1)
		},
	}
	flags := cmd.Flags()
	addDomainFlags(cmd, &integrand, &axes, &dim)
	flags.StringArrayVarP(&methods, "method", "m", []string{types.MethodAdaptiveSimpson.String()}, "方法[=参数]，参数为细分数、采样数或目标相对误差")
	flags.Uint64Var(&seed, "seed", 0, "蒙特卡洛随机种子")
	addEngineFlags(cmd, &cfg)
	return cmd
}

// newSweepCmd 参数扫描：误差与平均耗时随细分数（采样数）的变化
func newSweepCmd() *cobra.Command {
	cfg := config.DefaultConfig()
	var (
		integrand string
		axes      []string
		dim       int
		method    string
		from      int
		to        int
		step      int
		repeats   int
		seed      uint64
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "按细分数或采样数扫描误差与耗时",
		Long: `sweep 对 from..to（步长 step）内的每个参数计算一次积分，
耗时取 repeats 次重复的平均值。只支持非自适应方法。`,
		Example: `  quadrature sweep -f x2 -a 0:1 -m midpoint --from 1 --to 80
  quadrature sweep -f square-sum -a 0:1 --dim 3 -m simpson --to 9 --repeats 5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := types.ParseMethod(method)
			if err != nil {
				return err
			}
			if m.IsAdaptive() {
				return fmt.Errorf("扫描不支持自适应方法 %s: %w", m, types.ErrInvalidParameter)
			}
			if from < 1 || to < from || step < 1 || repeats < 1 {
				return fmt.Errorf("扫描范围 from=%d to=%d step=%d repeats=%d: %w",
					from, to, step, repeats, types.ErrInvalidParameter)
			}
			bounds, err := buildBounds(axes, dim)
			if err != nil {
				return err
			}
			run := config.RunConfig{Integrand: integrand, Bounds: bounds}
			for k := from; k <= to; k += step {
				run.Methods = append(run.Methods, config.MethodConfig{Method: m.String(), Param: float64(k)})
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = &seed
			}
			cfg.Runs = []config.RunConfig{run}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return execute(cmd, &cfg, repeats)
		},
	}
	flags := cmd.Flags()
	addDomainFlags(cmd, &integrand, &axes, &dim)
	flags.StringVarP(&method, "method", "m", types.MethodMidpoint.String(), "非自适应方法")
	flags.IntVar(&from, "from", 1, "起始细分数或采样数")
	flags.IntVar(&to, "to", 80, "结束细分数或采样数（含）")
	flags.IntVar(&step, "step", 1, "步长")
	flags.IntVar(&repeats, "repeats", 1, "每个参数重复次数，耗时取平均")
	flags.Uint64Var(&seed, "seed", 0, "蒙特卡洛随机种子")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "日志等级 debug|info|warn|error")
	return cmd
}

// addDomainFlags 被积函数与积分区域参数
func addDomainFlags(cmd *cobra.Command, integrand *string, axes *[]string, dim *int) {
	flags := cmd.Flags()
	flags.StringVarP(integrand, "func", "f", "", "被积函数名称（见 list）")
	flags.StringArrayVarP(axes, "axis", "a", nil, "积分区间 lower:upper，可重复指定多维，支持 pi 倍数")
	flags.IntVar(dim, "dim", 0, "只给出一个区间时复制为指定维数，否则须与区间数一致")
	_ = cmd.MarkFlagRequired("func")
	_ = cmd.MarkFlagRequired("axis")
}

// buildBounds 解析区间参数
// dim 为 0 时不检查；只给出一个区间时复制为 dim 维；其余情况 dim 必须等于区间数
func buildBounds(axes []string, dim int) ([][]float64, error) {
	bounds := make([][]float64, 0, len(axes))
	for _, axis := range axes {
		lower, upper, err := parseAxis(axis)
		if err != nil {
			return nil, err
		}
		bounds = append(bounds, []float64{lower, upper})
	}
	switch {
	case dim == 0 || dim == len(bounds):
	case dim > 1 && len(bounds) == 1:
		for len(bounds) < dim {
			bounds = append(bounds, bounds[0])
		}
	default:
		return nil, fmt.Errorf("--dim=%d 与 %d 个区间不一致: %w", dim, len(bounds), types.ErrInvalidParameter)
	}
	return bounds, nil
}

// newRunCmd 执行 YAML 配置中的全部运行
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <config.yaml>",
		Short: "执行配置文件中的全部积分",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			return execute(cmd, cfg, 1)
		},
	}
}

// addEngineFlags 自适应引擎参数
func addEngineFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	flags.IntVar(&cfg.Engine.InitialSubdivisions, "initial", cfg.Engine.InitialSubdivisions, "自适应初始细分数")
	flags.IntVar(&cfg.Engine.MaxIterations, "max-iterations", cfg.Engine.MaxIterations, "最大加倍次数")
	flags.IntVar(&cfg.Engine.MaxEvaluations, "max-evaluations", cfg.Engine.MaxEvaluations, "被积函数调用预算，0 表示不限")
	flags.StringVar(&cfg.Engine.Criterion, "criterion", cfg.Engine.Criterion, "收敛判据 relative|combined")
	flags.Float64Var(&cfg.Engine.AbsTolerance, "abs-tol", cfg.Engine.AbsTolerance, "combined 判据的绝对容差")
	flags.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "日志等级 debug|info|warn|error")
}

// parseAxis 解析 lower:upper
func parseAxis(s string) (float64, float64, error) {
	lo, hi, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("区间 '%s' 需要 lower:upper 格式: %w", s, types.ErrInvalidBounds)
	}
	lower, err := parseBound(lo)
	if err != nil {
		return 0, 0, err
	}
	upper, err := parseBound(hi)
	if err != nil {
		return 0, 0, err
	}
	return lower, upper, nil
}

// parseBound 解析单个端点，支持 pi、-pi、2pi 之类写法
func parseBound(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if coef, ok := strings.CutSuffix(s, "pi"); ok {
		switch coef {
		case "", "+":
			return math.Pi, nil
		case "-":
			return -math.Pi, nil
		}
		v, err := strconv.ParseFloat(strings.TrimSuffix(coef, "*"), 64)
		if err != nil {
			return 0, fmt.Errorf("端点 '%s': %w", s, types.ErrInvalidBounds)
		}
		return v * math.Pi, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("端点 '%s': %w", s, types.ErrInvalidBounds)
	}
	return v, nil
}

// parseMethod 解析 方法[=参数]，省略参数时取方法默认值
func parseMethod(arg string) (config.MethodConfig, error) {
	name, value, hasValue := strings.Cut(arg, "=")
	method, err := types.ParseMethod(strings.TrimSpace(name))
	if err != nil {
		return config.MethodConfig{}, err
	}
	mc := config.MethodConfig{Method: method.String()}
	if !hasValue {
		mc.Param = defaultParam(method)
		return mc, nil
	}
	mc.Param, err = strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return config.MethodConfig{}, fmt.Errorf("方法参数 '%s': %w", value, types.ErrInvalidParameter)
	}
	return mc, nil
}

// defaultParam 方法默认参数
func defaultParam(method types.Method) float64 {
	switch {
	case method.IsAdaptive():
		return defaultTolerance
	case method == types.MethodMonteCarlo:
		return float64(types.DefaultSamples)
	}
	return defaultSubdivisions
}
