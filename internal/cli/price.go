package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/amirhossein-jamali/vending-sync/internal/app"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/entity"
	errs "github.com/amirhossein-jamali/vending-sync/internal/domain/error"
	"github.com/amirhossein-jamali/vending-sync/internal/domain/usecase/pricing"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/vending-sync/internal/infrastructure/config"
)

type quoteFlags struct {
	base       string
	commission string
	fee        string
	tax        string
	direction  string
	increment  string
	operator   string
}

func newPriceCmd(opts *options) *cobra.Command {
	priceCmd := &cobra.Command{
		Use:   "price",
		Short: "Derive customer prices",
	}
	priceCmd.AddCommand(newQuoteCmd(opts))
	priceCmd.AddCommand(newImpliedCommissionCmd(opts))
	return priceCmd
}

func newQuoteCmd(opts *options) *cobra.Command {
	flags := &quoteFlags{}

	quoteCmd := &cobra.Command{
		Use:   "quote",
		Short: "Quote a price from a policy or from an operator's stored settings",
		Example: `  vendsync price quote --base 2.00 --commission 10 --fee 3 --tax 8 --direction up --increment 0.05
  vendsync price quote --base 2.00 --commission 10 --operator 5f0c3c1e-8a4b-4e0e-9a53-2f8e6d1f7b21`,
		RunE: func(cmd *cobra.Command, args []string) error {
			breakdown, err := runQuote(cmd, opts, flags)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), opts.output, dto.NewPriceBreakdownResponse(breakdown))
		},
	}

	quoteCmd.Flags().StringVar(&flags.base, "base", "", "Base price")
	quoteCmd.Flags().StringVar(&flags.commission, "commission", "", "Commission percentage")
	quoteCmd.Flags().StringVar(&flags.fee, "fee", "", "Processing fee percentage of the commission")
	quoteCmd.Flags().StringVar(&flags.tax, "tax", "", "Sales tax percentage of the commission")
	quoteCmd.Flags().StringVar(&flags.direction, "direction", string(entity.RoundUp), "Rounding direction: up or down")
	quoteCmd.Flags().StringVar(&flags.increment, "increment", "0.05", "Rounding increment: 0.05, 0.10, 0.25 or 0.50")
	quoteCmd.Flags().StringVar(&flags.operator, "operator", "", "Use the stored pricing settings of this operator")
	_ = quoteCmd.MarkFlagRequired("base")
	_ = quoteCmd.MarkFlagRequired("commission")
	quoteCmd.MarkFlagsMutuallyExclusive("operator", "fee")
	quoteCmd.MarkFlagsMutuallyExclusive("operator", "tax")

	return quoteCmd
}

func runQuote(cmd *cobra.Command, opts *options, flags *quoteFlags) (*entity.PriceBreakdown, error) {
	basePrice, err := entity.ParseBoundedDecimal(flags.base)
	if err != nil {
		return nil, fmt.Errorf("%w: --base %q: %w", errs.ErrInvalidBasePrice, flags.base, err)
	}
	commission, err := entity.ParseBoundedDecimal(flags.commission)
	if err != nil {
		return nil, fmt.Errorf("%w: --commission %q: %w", errs.ErrInvalidCommission, flags.commission, err)
	}

	if flags.operator == "" {
		policy, err := policyFromFlags(flags)
		if err != nil {
			return nil, err
		}
		return pricing.NewPricingService(nil, opts.logger()).Quote(basePrice, commission, policy)
	}

	operatorID, err := uuid.Parse(flags.operator)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", errs.ErrInvalidOperatorID, flags.operator)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	application, err := app.New(cmd.Context(), cfg, opts.logger())
	if err != nil {
		return nil, err
	}
	defer func() { _ = application.Close() }()

	return application.Pricing.QuoteForOperator(cmd.Context(), operatorID, basePrice, commission)
}

func policyFromFlags(flags *quoteFlags) (entity.PricingPolicy, error) {
	if flags.fee == "" || flags.tax == "" {
		return entity.PricingPolicy{}, fmt.Errorf("%w: --fee and --tax are required without --operator", errs.ErrInvalidPricingPolicy)
	}

	fee, err := parsePolicyFlag("processingFeePercentage", flags.fee)
	if err != nil {
		return entity.PricingPolicy{}, err
	}
	tax, err := parsePolicyFlag("salesTaxPercentage", flags.tax)
	if err != nil {
		return entity.PricingPolicy{}, err
	}
	increment, err := parsePolicyFlag("roundingIncrement", flags.increment)
	if err != nil {
		return entity.PricingPolicy{}, err
	}

	return entity.PricingPolicy{
		ProcessingFeePercentage: fee,
		SalesTaxPercentage:      tax,
		RoundingDirection:       entity.RoundingDirection(flags.direction),
		RoundingIncrement:       increment,
	}, nil
}

func parsePolicyFlag(name, raw string) (decimal.Decimal, error) {
	value, err := entity.ParseBoundedDecimal(raw)
	if err != nil {
		return decimal.Zero, errs.NewPricingPolicyError(name, raw, fmt.Errorf("%w: %w", errs.ErrInvalidPricingPolicy, err))
	}
	return value, nil
}

func newImpliedCommissionCmd(opts *options) *cobra.Command {
	var rawAmount, rawBase string

	impliedCmd := &cobra.Command{
		Use:     "implied-commission",
		Short:   "Show the commission percentage a commission amount represents",
		Example: "  vendsync price implied-commission --amount 0.25 --base 2.00",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := entity.ParseBoundedDecimal(rawAmount)
			if err != nil {
				return fmt.Errorf("%w: --amount %q: %w", errs.ErrInvalidCommission, rawAmount, err)
			}
			basePrice, err := entity.ParseBoundedDecimal(rawBase)
			if err != nil {
				return fmt.Errorf("%w: --base %q: %w", errs.ErrInvalidBasePrice, rawBase, err)
			}

			percentage, err := pricing.ImpliedCommissionPercentage(amount, basePrice)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), opts.output, dto.NewImpliedCommissionResponse(amount, basePrice, percentage))
		},
	}

	impliedCmd.Flags().StringVar(&rawAmount, "amount", "", "Commission amount")
	impliedCmd.Flags().StringVar(&rawBase, "base", "", "Base price")
	_ = impliedCmd.MarkFlagRequired("amount")
	_ = impliedCmd.MarkFlagRequired("base")

	return impliedCmd
}
