package normalize

import (
	"fmt"
	"strings"

	"contract-mapper/internal/diagnostic"
	"contract-mapper/model"
)

// governance lifts ownership and timestamp properties onto the table.
// Values absent on the entry are inherited from the contract level. The
// consumed keys are removed from the returned bag.
func (n *normalizer) governance(t *model.Table, props []model.CustomProperty, info *model.ContractInfo, loc string) []model.CustomProperty {
	consumed := []string{model.PropOwner, model.PropSLA, model.PropSupport, model.PropPricing, model.PropTeam}

	if v, ok := model.LookupProperty(props, model.PropOwner); ok {
		t.Owner = fmt.Sprint(v)
	}

	t.SLA = inherit(props, model.PropSLA, info.SLAProperties)
	t.Support = inherit(props, model.PropSupport, info.Support)
	t.Pricing = inherit(props, model.PropPricing, info.Price)
	t.Team = inherit(props, model.PropTeam, info.Team)

	for _, key := range []string{model.PropCreatedAt, model.PropUpdatedAt} {
		v, ok := model.LookupProperty(props, key)
		if !ok {
			continue
		}

		ts, ok := model.ParseTimestamp(v)
		if !ok {
			n.diags.AddWarning(diagnostic.CodeInvalidValue,
				fmt.Sprintf("%s value %v is not a timestamp, keeping it as a custom property", key, v), loc, key)

			continue
		}

		if key == model.PropCreatedAt {
			t.CreatedAt = &ts
		} else {
			t.UpdatedAt = &ts
		}

		consumed = append(consumed, key)
	}

	return model.WithoutProperties(props, consumed...)
}

func inherit(props []model.CustomProperty, key string, fallback any) any {
	if v, ok := model.LookupProperty(props, key); ok {
		return v
	}

	return fallback
}

// dataLevel promotes the first "<key>:<value>" tag whose key matches the
// configured tag key. The promoted tag is removed from the returned tags. A
// matching tag with an unknown value is kept and leaves the level unset.
// Without a matching tag, a dataLevel custom property is used. The custom
// property is dropped from the bag whenever a level is promoted.
func (n *normalizer) dataLevel(tags []string, props []model.CustomProperty, loc string) (model.DataLevel, []string, []model.CustomProperty) {
	for i, tag := range tags {
		key, value, ok := strings.Cut(tag, ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), n.opts.DataLevelTagKey) {
			continue
		}

		level, ok := model.ParseDataLevel(value)
		if !ok {
			n.diags.AddWarning(diagnostic.CodeUnknownDataLevel,
				fmt.Sprintf("tag %q names no known data level (want one of %v)", tag, model.DataLevels), loc, "tags")

			return model.DataLevelNone, tags, props
		}

		rest := make([]string, 0, len(tags)-1)
		rest = append(rest, tags[:i]...)
		rest = append(rest, tags[i+1:]...)

		if len(rest) == 0 {
			rest = nil
		}

		return level, rest, model.WithoutProperties(props, model.PropDataLevel)
	}

	raw, ok := model.LookupProperty(props, model.PropDataLevel)
	if !ok {
		return model.DataLevelNone, tags, props
	}

	level, ok := model.ParseDataLevel(fmt.Sprint(raw))
	if !ok {
		n.diags.AddWarning(diagnostic.CodeUnknownDataLevel,
			fmt.Sprintf("custom property %s=%v names no known data level", model.PropDataLevel, raw), loc, model.PropDataLevel)

		return model.DataLevelNone, tags, props
	}

	return level, tags, model.WithoutProperties(props, model.PropDataLevel)
}
