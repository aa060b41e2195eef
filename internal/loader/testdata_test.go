package loader

const collisionsCSV = `DR Number,Date Occurred,Time Occurred,Area Name,Crime Code Description,Address,Cross Street,Victim Age,Victim Sex,Victim Descent,Premise Description,Location
190319651,08/24/2019 12:00:00 AM,0450,Southwest,TRAFFIC DR #,JEFFERSON BL,NORMANDIE AV,22,M,H,STREET,"(34.0255, -118.3002)"
190319680,08/30/2019 12:00:00 AM,2320,Southwest,TRAFFIC DR #,JEFFERSON BL,WESTERN AV,,F,B,PARKING LOT,"(0.0, 0.0)"
190413078,08/25/2019 12:00:00 AM,0545,Hollenbeck,HIT AND RUN,N BROADWAY,,99,X,,STREET,"(34.0738, -118.2078)"
`

const regionsJSON = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"OBJECTID": 1, "NAME": "WEST ADAMS", "SERVICE_RE": "REGION 10"},
     "geometry": {"type": "Polygon", "coordinates": [[[-118.35, 34.0], [-118.28, 34.0], [-118.28, 34.05], [-118.35, 34.05], [-118.35, 34.0]]]}},
    {"type": "Feature", "properties": {"OBJECTID": 2, "NAME": "LINCOLN HEIGHTS", "SERVICE_RE": "REGION 8"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[-118.22, 34.06], [-118.19, 34.06], [-118.19, 34.09], [-118.22, 34.09], [-118.22, 34.06]]]]}}
  ]
}`

const schoolsCSV = `Name,Category2,Category3,Latitude,Longitude,Address Line 1,City,State,Enrollment
Foshay Learning Center,Public,Span,34.0329,-118.3133,3751 S Harvard Blvd,Los Angeles,CA,2100
Lincoln High,Public,High,34.0735,-118.2069,3501 N Broadway,Los Angeles,CA,
Pending Site,Charter,Elementary,,,,Los Angeles,CA,n/a
`
