package rest

import (
	"context"
	"net/http"
	"strconv"

	"healthpoints/internal/domain"
)

// PointsThisWeek returns the points total of the current week.
func (c *Client) PointsThisWeek(ctx context.Context) (domain.PointsPerWeek, error) {
	var out domain.PointsPerWeek
	_, err := c.do(ctx, http.MethodGet, "points-this-week", nil, nil, &out)
	return out, err
}

// BloodPressureByDays returns the readings of the last days days.
func (c *Client) BloodPressureByDays(ctx context.Context, days int) (domain.BloodPressureByPeriod, error) {
	var out domain.BloodPressureByPeriod
	_, err := c.do(ctx, http.MethodGet, "bp-by-days/"+strconv.Itoa(days), nil, nil, &out)
	return out, err
}

// WeightByDays returns the weigh-ins of the last days days.
func (c *Client) WeightByDays(ctx context.Context, days int) (domain.WeightByPeriod, error) {
	var out domain.WeightByPeriod
	_, err := c.do(ctx, http.MethodGet, "weight-by-days/"+strconv.Itoa(days), nil, nil, &out)
	return out, err
}

// MyPreferences returns the settings of the authenticated user.
func (c *Client) MyPreferences(ctx context.Context) (domain.Preference, error) {
	var out domain.Preference
	_, err := c.do(ctx, http.MethodGet, "my-preferences", nil, nil, &out)
	return out, err
}

// Account returns the authenticated account.
func (c *Client) Account(ctx context.Context) (domain.Account, error) {
	var out domain.Account
	_, err := c.do(ctx, http.MethodGet, "account", nil, nil, &out)
	return out, err
}
