package registry

// Selection sets shared by the marketplace documents. Only selections are
// composed here; every argument stays a $variable.
const (
	candidateSelection = `available premium listing { fixedPrice minimumOfferPrice status }
      pricing {
        primaryPricingInfo { remainingYearsPrice firstYearPrice adjustBy description nativeCurrencyFinalPrice }
        secondaryPricingInfo { price usdPrice minOfferPrice usdMinOfferPrice currency { decimals symbol icon evmCompatible id name } }
      }
      chain { id addressType blockExplorerUrl name networkId currency { decimals symbol icon evmCompatible id name } }
      sld tld eoi tokenized favoriteCount secondarySaleAvailable secondarySaleUnavailableReason unavailableReason
      saleType ownerName nearAccountEscrowed nearAccountAvailable reservationExpiresAt registrant { id } tokenizationStatus`

	pageSelection = `currentPage hasNextPage hasPreviousPage pageSize totalCount totalPages
      brandingInfo { tld styling { fontColor primaryColor secondaryColor logo { url } } }`

	searchArgs = `names: $names
        page: $page
        size: $size
        sortByPrice: $sortByPrice
        sortByDate: $sortByDate
        availableForOffer: $availableForOffer
        listedForSale: $listedForSale
        new: $new
        maxChars: $maxChars
        minChars: $minChars
        maxPrice: $maxPrice
        minPrice: $minPrice
        premiumNames: $premiumNames
        type: $type`
)

const docNames = `query Names($name: String, $tlds: [String!], $take: Int, $skip: Int, $sortOrder: SortOrderType, $ownedBy: [AddressCAIP10!], $networkIds: [String!], $registrarIanaIds: [Int!], $claimStatus: NamesQueryClaimStatus) {
  names(
    name: $name
    tlds: $tlds
    take: $take
    skip: $skip
    sortOrder: $sortOrder
    ownedBy: $ownedBy
    networkIds: $networkIds
    registrarIanaIds: $registrarIanaIds
    claimStatus: $claimStatus
  ) {
    items { name expiresAt tokenizedAt tokens { tokenId networkId ownerAddress type startsAt expiresAt } }
    totalCount
    currentPage
    totalPages
    hasNextPage
  }
}`

const docName = `query Name($name: String!) {
  name(name: $name) {
    name
    expiresAt
    tokenizedAt
    registrar { name ianaId }
    tokens { tokenId networkId ownerAddress type startsAt expiresAt }
  }
}`

const docDomainInfo = `query GetDomainInfo($name: String!) {
  name(name: $name) {
    claimedBy
    name
    eoi
    expiresAt
    isFractionalized
    tokenizedAt
    dsKeys { algorithm digest digestType keyTag }
    fractionalTokenInfo {
      address
      status
      id
      boughtOutAt
      buyoutPrice
      fractionalizedAt
      poolAddress
      chain { name networkId addressUrlTemplate }
      params { symbol name decimals totalSupply }
    }
  }
}`

const docNameActivities = `query NameActivities($name: String!, $take: Int, $skip: Int) {
  nameActivities(name: $name, take: $take, skip: $skip) {
    items { type createdAt }
    totalCount
    hasNextPage
  }
}`

const docNameActivityFeed = `query GetDomainActivities($name: String!, $take: Int!) {
  nameActivities(name: $name, take: $take, sortOrder: DESC) {
    items { type timestamp transactionHash value }
  }
}`

const docListings = `query Listings($take: Int, $skip: Int, $tlds: [String!], $sld: String) {
  listings(take: $take, skip: $skip, tlds: $tlds, sld: $sld) {
    items { id price currency { symbol decimals } name tokenId expiresAt createdAt }
    totalCount
    hasNextPage
  }
}`

// older deployments typed the window as Float!
const docListingsFloat = `query Listings($take: Float!, $skip: Float!, $tlds: [String!], $sld: String) {
  listings(take: $take, skip: $skip, tlds: $tlds, sld: $sld) {
    items { id price currency { symbol decimals } name tokenId expiresAt createdAt }
    totalCount
    hasNextPage
  }
}`

const docOffers = `query Offers($tokenId: String, $take: Int, $skip: Int) {
  offers(tokenId: $tokenId, take: $take, skip: $skip) {
    items { id price status currency { symbol decimals } offererAddress expiresAt createdAt }
    totalCount
    hasNextPage
  }
}`

const docOffersStrict = `query GetOffers($tokenId: String!, $take: Int!, $skip: Int!) {
  offers(tokenId: $tokenId, take: $take, skip: $skip) {
    items { id price createdAt maker }
    totalCount
  }
}`

const docMarketplaceMetrics = `query MarketplaceMetrics($tld: String) {
  marketplaceMetrics(tld: $tld) {
    items {
      tld
      sales24h previous24hSales sales7d previous7dSales sales30d previous30dSales
      listed minted sales
      volume24h previous24hVolume volume7d previous7dVolume volume30d previous30dVolume volume
    }
  }
}`

const docRecommendInput = `query recommendDomains($names: [NameDescriptorInput!]!, $minPrice: Float, $maxPrice: Float, $type: MarketplaceFiltersTypeArg) {
  recommendDomains(names: $names, minPrice: $minPrice, maxPrice: $maxPrice, type: $type) {
    ` + candidateSelection + `
  }
}`

const docRecommendArg = `query recommendDomains($names: [NameDescriptorArg!]!, $minPrice: Float, $maxPrice: Float, $type: MarketplaceFiltersType) {
  recommendDomains(names: $names, minPrice: $minPrice, maxPrice: $maxPrice, type: $type) {
    ` + candidateSelection + `
  }
}`

const docSearchInput = `query searchDomains($names: [NameDescriptorInput!]!, $page: Int, $size: Int, $sortByPrice: SortOrder, $sortByDate: SortOrder, $availableForOffer: Boolean, $listedForSale: Boolean, $new: Boolean, $maxChars: Int, $minChars: Int, $maxPrice: Float, $minPrice: Float, $premiumNames: Boolean, $type: MarketplaceFiltersTypeArg) {
  searchDomains(
        ` + searchArgs + `
  ) {
    ` + pageSelection + `
    items { ` + candidateSelection + ` }
  }
}`

const docSearchArg = `query searchDomains($names: [NameDescriptorArg!]!, $page: Int, $size: Int, $sortByPrice: SortOrderType, $sortByDate: SortOrderType, $availableForOffer: Boolean, $listedForSale: Boolean, $new: Boolean, $maxChars: Int, $minChars: Int, $maxPrice: Float, $minPrice: Float, $premiumNames: Boolean, $type: MarketplaceFiltersType) {
  searchDomains(
        ` + searchArgs + `
  ) {
    ` + pageSelection + `
    items { ` + candidateSelection + ` }
  }
}`

const docSearchNames = `query searchNames($names: [NameDescriptorArg!]!, $page: Int, $size: Int, $sortByPrice: SortOrderType, $sortByDate: SortOrderType, $availableForOffer: Boolean, $listedForSale: Boolean, $new: Boolean, $maxChars: Int, $minChars: Int, $maxPrice: Float, $minPrice: Float, $premiumNames: Boolean, $type: MarketplaceFiltersType) {
  searchNames(
        ` + searchArgs + `
  ) {
    ` + pageSelection + `
    items { ` + candidateSelection + ` }
  }
}`
