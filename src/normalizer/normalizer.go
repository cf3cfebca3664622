package normalizer

import (
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/openapi-orders/src/models"
	"github.com/jiaming2012/openapi-orders/src/utils"
)

// Normalizer reshapes an order ticket whenever the order type or the duration
// changes, so that exactly the fields the selection needs are present. It does
// no I/O: the price of a limit order is injected with WithLimitPrice.
type Normalizer struct {
	placeholders Placeholders
	limitPrice   *float64
	clock        utils.Clock
}

func (n *Normalizer) WithLimitPrice(price float64) *Normalizer {
	out := *n
	out.limitPrice = &price
	return &out
}

func (n *Normalizer) Placeholders() Placeholders {
	return n.placeholders
}

func (n *Normalizer) NormalizeForOrderType(ticket models.OrderTicket, orderType models.OrderType) (models.OrderTicket, error) {
	out := ticket.Clone()
	out.ClearPriceFields()

	switch orderType {
	case models.OrderTypeMarket:
		// best price in the market, no price fields
	case models.OrderTypeLimit:
		out.OrderPrice = models.Float(n.getLimitPrice())
	case models.OrderTypeStopIfBid, models.OrderTypeStopIfOffered, models.OrderTypeStopIfTraded:
		out.OrderPrice = models.Float(n.placeholders.OrderPrice)
	case models.OrderTypeStopLimit:
		out.OrderPrice = models.Float(n.placeholders.OrderPrice)
		out.StopLimitPrice = models.Float(n.placeholders.StopLimitPrice)
	case models.OrderTypeTrailingStop, models.OrderTypeTrailingStopIfBid, models.OrderTypeTrailingStopIfOffered, models.OrderTypeTrailingStopIfTraded:
		out.OrderPrice = models.Float(n.placeholders.OrderPrice)
		out.TrailingStopDistanceToMarket = models.Float(n.placeholders.TrailingStopDistanceToMarket)
		out.TrailingStopStep = models.Float(n.placeholders.TrailingStopStep)
	default:
		log.Warnf("NormalizeForOrderType: unsupported order type %s", orderType)
		return ticket, models.NewDiagnostic("OrderType", orderType, fmt.Sprintf("unsupported order type %s", orderType))
	}

	out.OrderType = orderType
	return out, nil
}

func (n *Normalizer) NormalizeForDuration(ticket models.OrderTicket, durationType models.DurationType) (models.OrderTicket, error) {
	out := ticket.Clone()

	switch durationType {
	case models.DurationTypeDayOrder, models.DurationTypeGoodTillCancel, models.DurationTypeFillOrKill, models.DurationTypeImmediateOrCancel:
		out.OrderDuration.ExpirationDateTime = nil
		out.OrderDuration.ExpirationDateContainsTime = nil
	case models.DurationTypeGoodTillDate:
		expiration := utils.ExpirationFrom(n.clock.Now(), GoodTillDateDays)
		out.OrderDuration.ExpirationDateTime = models.String(utils.FormatExpirationDateTime(expiration))
		out.OrderDuration.ExpirationDateContainsTime = models.Bool(true)
	default:
		log.Warnf("NormalizeForDuration: unsupported order duration %s", durationType)
		return ticket, models.NewDiagnostic("DurationType", durationType, fmt.Sprintf("unsupported order duration %s", durationType))
	}

	out.OrderDuration.DurationType = durationType
	return out, nil
}

// EnsureSupportedOrderType switches the ticket to the first supported order
// type, in sorted order, when its current type is not supported by the
// instrument. changed reports whether the ticket was reshaped.
func (n *Normalizer) EnsureSupportedOrderType(ticket models.OrderTicket, supported []models.OrderType) (out models.OrderTicket, changed bool, err error) {
	for _, t := range supported {
		if t == ticket.OrderType {
			return ticket, false, nil
		}
	}

	candidates := make([]models.OrderType, 0, len(supported))
	for _, t := range supported {
		if t.Validate() == nil {
			candidates = append(candidates, t)
		}
	}

	if len(candidates) == 0 {
		return ticket, false, models.NewDiagnostic("SupportedOrderTypes", supported, "instrument supports none of the known order types")
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i] < candidates[j]
	})

	log.Infof("EnsureSupportedOrderType: %s is not supported, switching to %s", ticket.OrderType, candidates[0])

	out, err = n.NormalizeForOrderType(ticket, candidates[0])
	if err != nil {
		return ticket, false, err
	}

	return out, true, nil
}

func (n *Normalizer) getLimitPrice() float64 {
	if n.limitPrice != nil {
		return *n.limitPrice
	}

	return n.placeholders.OrderPrice
}

func NewNormalizer(placeholders Placeholders, clock utils.Clock) *Normalizer {
	if clock == nil {
		clock = utils.RealClock{}
	}

	return &Normalizer{
		placeholders: placeholders,
		clock:        clock,
	}
}
