package eligibility

import "github.com/jakechorley/eeep-admissions/pkg/core/model"

// Classify returns the quota categories a candidate qualifies for.
//
// Every candidate competes in the broad list of their network. Residents of
// the school's region also compete for their network's regional quota, and
// disabled candidates for the disability quota regardless of network.
func Classify(network model.Network, resident, disabled bool) []model.Category {
	categories := make([]model.Category, 0, 3)

	if network == model.NetworkPrivate {
		categories = append(categories, model.CategoryPrivateBroad)
		if resident {
			categories = append(categories, model.CategoryPrivateRegional)
		}
	} else {
		categories = append(categories, model.CategoryPublicBroad)
		if resident {
			categories = append(categories, model.CategoryPublicRegional)
		}
	}

	if disabled {
		categories = append(categories, model.CategoryDisability)
	}

	return categories
}

// RegionalCategory returns the regional quota of a network
func RegionalCategory(network model.Network) model.Category {
	if network == model.NetworkPrivate {
		return model.CategoryPrivateRegional
	}
	return model.CategoryPublicRegional
}

// BroadCategory returns the broad list of a network
func BroadCategory(network model.Network) model.Category {
	if network == model.NetworkPrivate {
		return model.CategoryPrivateBroad
	}
	return model.CategoryPublicBroad
}
